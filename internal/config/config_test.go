package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/csvjoin/internal/config"
	joinerrors "github.com/paveg/csvjoin/internal/errors"
	"github.com/paveg/csvjoin/internal/io"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, "left", cfg.JoinType)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Empty(t, cfg.OutputDelimiter)
	assert.Empty(t, cfg.Comment)
	assert.True(t, cfg.Header)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, "snappy", cfg.Compression)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.ParallelLoad)
	assert.False(t, cfg.Verbose)
	assert.Zero(t, cfg.Preview)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(*config.Config)
		expectedError string
	}{
		{
			name:   "valid config",
			modify: func(*config.Config) {},
		},
		{
			name:   "tab delimiter",
			modify: func(c *config.Config) { c.Delimiter = "tab" },
		},
		{
			name:          "multi-character delimiter",
			modify:        func(c *config.Config) { c.Delimiter = "||" },
			expectedError: "Delimiter: expected a single character",
		},
		{
			name:          "quote delimiter",
			modify:        func(c *config.Config) { c.Delimiter = `"` },
			expectedError: "invalid delimiter",
		},
		{
			name:          "bad output delimiter",
			modify:        func(c *config.Config) { c.OutputDelimiter = "ab" },
			expectedError: "OutputDelimiter",
		},
		{
			name:          "comment equals delimiter",
			modify:        func(c *config.Config) { c.Comment = "," },
			expectedError: "Comment must differ from Delimiter",
		},
		{
			name:          "unknown encoding",
			modify:        func(c *config.Config) { c.Encoding = "klingon" },
			expectedError: "unsupported encoding klingon",
		},
		{
			name:          "unknown output format",
			modify:        func(c *config.Config) { c.OutputFormat = "xml" },
			expectedError: "OutputFormat",
		},
		{
			name:          "unknown compression",
			modify:        func(c *config.Config) { c.Compression = "rar" },
			expectedError: "unsupported parquet compression",
		},
		{
			name:          "zero batch size",
			modify:        func(c *config.Config) { c.BatchSize = 0 },
			expectedError: "BatchSize must be positive, got 0",
		},
		{
			name:          "empty join type",
			modify:        func(c *config.Config) { c.JoinType = "" },
			expectedError: "unsupported join kind",
		},
		{
			name:          "blank join type",
			modify:        func(c *config.Config) { c.JoinType = "  " },
			expectedError: "unsupported join kind",
		},
		{
			name:          "unknown join type",
			modify:        func(c *config.Config) { c.JoinType = "outer" },
			expectedError: "unsupported join kind",
		},
		{
			name:          "negative preview",
			modify:        func(c *config.Config) { c.Preview = -1 },
			expectedError: "Preview must be non-negative, got -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	partial := config.Config{
		Delimiter: "|",
		Preview:   5,
	}

	cfg := partial.WithDefaults()

	assert.Equal(t, "|", cfg.Delimiter)
	assert.Equal(t, 5, cfg.Preview)
	assert.Empty(t, cfg.JoinType)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, "snappy", cfg.Compression)
	assert.Equal(t, 1000, cfg.BatchSize)
	// booleans keep their zero value
	assert.False(t, cfg.Header)
}

func TestConfig_Marshal(t *testing.T) {
	cfg := config.NewConfig()
	cfg.JoinType = "full"
	cfg.Delimiter = "|"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "join_type: full")
	assert.Contains(t, string(data), "delimiter: '|'")

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestConfig_InputOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Delimiter = "tab"
	cfg.Comment = "#"
	cfg.Header = false
	cfg.TrimSpace = true
	cfg.LazyQuotes = true
	cfg.Encoding = "latin1"
	cfg.InputFormat = "json"

	opts, err := cfg.InputOptions()
	require.NoError(t, err)

	assert.Equal(t, io.FormatJSON, opts.Format)
	assert.Equal(t, '\t', opts.CSV.Delimiter)
	assert.Equal(t, '#', opts.CSV.Comment)
	assert.False(t, opts.CSV.Header)
	assert.True(t, opts.CSV.SkipInitialSpace)
	assert.True(t, opts.CSV.LazyQuotes)
	assert.Equal(t, "latin1", opts.CSV.Encoding)
}

func TestConfig_OutputOptions(t *testing.T) {
	t.Run("output delimiter falls back to input delimiter", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Delimiter = "|"

		opts, err := cfg.OutputOptions()
		require.NoError(t, err)
		assert.Equal(t, io.FormatAuto, opts.Format)
		assert.Equal(t, '|', opts.CSV.Delimiter)
		assert.True(t, opts.CSV.Header)
	})

	t.Run("explicit output settings", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.OutputDelimiter = ";"
		cfg.CRLF = true
		cfg.OutputFormat = "parquet"
		cfg.Compression = "zstd"
		cfg.BatchSize = 64

		opts, err := cfg.OutputOptions()
		require.NoError(t, err)
		assert.Equal(t, io.FormatParquet, opts.Format)
		assert.Equal(t, ';', opts.CSV.Delimiter)
		assert.True(t, opts.CSV.UseCRLF)
		assert.Equal(t, io.ParquetOptions{Compression: "zstd", BatchSize: 64}, opts.Parquet)
	})
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{"", ','},
		{",", ','},
		{"|", '|'},
		{";", ';'},
		{"tab", '\t'},
		{"TAB", '\t'},
		{`\t`, '\t'},
		{"\t", '\t'},
		{"§", '§'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := config.ParseDelimiter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}

	for _, bad := range []string{"ab", `"`, "\n"} {
		_, err := config.ParseDelimiter(bad)
		assert.Error(t, err, bad)
	}
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("csvjoin", pflag.ContinueOnError)
	fs.StringP("type", "t", "left", "")
	fs.StringP("delimiter", "d", ",", "")
	fs.String("output-delimiter", "", "")
	fs.Bool("no-header", false, "")
	fs.Bool("parallel", false, "")
	fs.Bool("strict", false, "")
	fs.Int("preview", 0, "")
	fs.String("config", "", "")
	fs.Bool("print-config", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("unchanged flags keep defaults", func(t *testing.T) {
		cfg, err := config.Load("", newFlagSet(t))
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("YAML file", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.yaml", "join_type: right\ndelimiter: ';'\nbatch_size: 10\nstrict: true\n")

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "right", cfg.JoinType)
		assert.Equal(t, ";", cfg.Delimiter)
		assert.Equal(t, 10, cfg.BatchSize)
		assert.True(t, cfg.Strict)
		assert.True(t, cfg.Header)
	})

	t.Run("JSON file", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.json", `{"join_type": "full", "output_format": "json"}`)

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "full", cfg.JoinType)
		assert.Equal(t, "json", cfg.OutputFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.yaml", "delimiter: ';;'\n")

		_, err := config.Load(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.yaml", "delimiter: ';'\nparallel_load: false\n")
		t.Setenv("CSVJOIN_DELIMITER", "|")
		t.Setenv("CSVJOIN_PARALLEL_LOAD", "true")
		t.Setenv("CSVJOIN_OUTPUT_DELIMITER", ",")

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "|", cfg.Delimiter)
		assert.Equal(t, ",", cfg.OutputDelimiter)
		assert.True(t, cfg.ParallelLoad)
	})

	t.Run("flags override environment and file", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.yaml", "join_type: right\ndelimiter: ';'\npreview: 2\n")
		t.Setenv("CSVJOIN_DELIMITER", "|")
		t.Setenv("CSVJOIN_JOIN_TYPE", "full")

		flags := newFlagSet(t, "--type", "inner", "-d", "tab", "--no-header", "--parallel", "--config", path)

		cfg, err := config.Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "inner", cfg.JoinType)
		assert.Equal(t, "tab", cfg.Delimiter)
		assert.False(t, cfg.Header)
		assert.True(t, cfg.ParallelLoad)
		assert.Equal(t, 2, cfg.Preview)
	})

	t.Run("explicitly empty join type is rejected", func(t *testing.T) {
		path := writeConfigFile(t, "csvjoin.yaml", "join_type: \"\"\n")
		_, err := config.Load(path, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, joinerrors.ErrUnsupportedJoinKind)

		for _, token := range []string{"", "  ", "outer"} {
			_, err := config.Load("", newFlagSet(t, "-t", token))
			require.Error(t, err, "token %q", token)
			assert.ErrorIs(t, err, joinerrors.ErrUnsupportedJoinKind)
			assert.Contains(t, err.Error(), "invalid configuration")
		}
	})

	t.Run("flag values are typed", func(t *testing.T) {
		cfg, err := config.Load("", newFlagSet(t, "--preview", "7", "--strict", "--output-delimiter", "|"))
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Preview)
		assert.True(t, cfg.Strict)
		assert.Equal(t, "|", cfg.OutputDelimiter)
	})
}
