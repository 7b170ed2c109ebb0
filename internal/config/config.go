// Package config provides configuration management for csvjoin
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/paveg/csvjoin/internal/io"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "CSVJOIN_"

// Default configuration values
const (
	DefaultJoinType    = "left"
	DefaultDelimiter   = ","
	DefaultEncoding    = io.DefaultEncoding
	DefaultCompression = io.DefaultCompression
	DefaultBatchSize   = io.DefaultBatchSize
)

// Config represents the configuration of one join run
type Config struct {
	// Join
	JoinType string `koanf:"join_type" json:"join_type" yaml:"join_type"` // left, right, inner or full
	Strict   bool   `koanf:"strict" json:"strict" yaml:"strict"`          // Require every row to match the header width

	// Input
	Delimiter   string `koanf:"delimiter" json:"delimiter" yaml:"delimiter"`          // Single character, or "tab"
	Comment     string `koanf:"comment" json:"comment" yaml:"comment"`                // Comment character (empty = disabled)
	Header      bool   `koanf:"header" json:"header" yaml:"header"`                   // First row holds column names
	TrimSpace   bool   `koanf:"trim_space" json:"trim_space" yaml:"trim_space"`       // Trim leading space of cells
	LazyQuotes  bool   `koanf:"lazy_quotes" json:"lazy_quotes" yaml:"lazy_quotes"`    // Tolerate stray quotes
	Encoding    string `koanf:"encoding" json:"encoding" yaml:"encoding"`             // Input text encoding
	InputFormat string `koanf:"input_format" json:"input_format" yaml:"input_format"` // auto, csv, json or parquet

	// Output
	OutputDelimiter string `koanf:"output_delimiter" json:"output_delimiter" yaml:"output_delimiter"` // Empty = same as Delimiter
	CRLF            bool   `koanf:"crlf" json:"crlf" yaml:"crlf"`                                     // Terminate lines with \r\n
	OutputFormat    string `koanf:"output_format" json:"output_format" yaml:"output_format"`          // auto, csv, json or parquet
	Compression     string `koanf:"compression" json:"compression" yaml:"compression"`                // Parquet codec
	BatchSize       int    `koanf:"batch_size" json:"batch_size" yaml:"batch_size"`                   // Parquet row group size

	// Execution
	ParallelLoad bool `koanf:"parallel_load" json:"parallel_load" yaml:"parallel_load"` // Load both inputs concurrently
	Preview      int  `koanf:"preview" json:"preview" yaml:"preview"`                   // Result rows to render (0 = none)
	Verbose      bool `koanf:"verbose" json:"verbose" yaml:"verbose"`                   // Debug logging
	Metrics      bool `koanf:"metrics" json:"metrics" yaml:"metrics"`                   // Log stage metrics summary
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		JoinType:    DefaultJoinType,
		Delimiter:   DefaultDelimiter,
		Header:      true,
		Encoding:    DefaultEncoding,
		Compression: DefaultCompression,
		BatchSize:   DefaultBatchSize,
	}
}

// defaultMap mirrors NewConfig for the koanf defaults layer.
func defaultMap() map[string]interface{} {
	c := NewConfig()
	return map[string]interface{}{
		"join_type":        c.JoinType,
		"strict":           c.Strict,
		"delimiter":        c.Delimiter,
		"comment":          c.Comment,
		"header":           c.Header,
		"trim_space":       c.TrimSpace,
		"lazy_quotes":      c.LazyQuotes,
		"encoding":         c.Encoding,
		"input_format":     c.InputFormat,
		"output_delimiter": c.OutputDelimiter,
		"crlf":             c.CRLF,
		"output_format":    c.OutputFormat,
		"compression":      c.Compression,
		"batch_size":       c.BatchSize,
		"parallel_load":    c.ParallelLoad,
		"preview":          c.Preview,
		"verbose":          c.Verbose,
		"metrics":          c.Metrics,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if _, err := join.ParseKind(c.JoinType); err != nil {
		return fmt.Errorf("JoinType: %w", err)
	}

	delimiter, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return fmt.Errorf("Delimiter: %w", err)
	}

	if _, err := ParseDelimiter(c.OutputDelimiter); err != nil {
		return fmt.Errorf("OutputDelimiter: %w", err)
	}

	comment, err := parseRune(c.Comment)
	if err != nil {
		return fmt.Errorf("Comment: %w", err)
	}
	if comment != 0 && comment == delimiter {
		return fmt.Errorf("Comment must differ from Delimiter, both are %q", comment)
	}

	if err := io.ValidateEncoding(c.Encoding); err != nil {
		return err
	}

	if _, err := io.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("InputFormat: %w", err)
	}

	if _, err := io.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("OutputFormat: %w", err)
	}

	if err := io.ValidateCompression(c.Compression); err != nil {
		return err
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("BatchSize must be positive, got %d", c.BatchSize)
	}

	if c.Preview < 0 {
		return fmt.Errorf("Preview must be non-negative, got %d", c.Preview)
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in for
// zero values. JoinType is left alone so an explicitly empty join type is
// still rejected by Validate.
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.Encoding == "" {
		c.Encoding = defaults.Encoding
	}
	if c.Compression == "" {
		c.Compression = defaults.Compression
	}
	if c.BatchSize == 0 {
		c.BatchSize = defaults.BatchSize
	}

	// Boolean fields are left alone so an explicit false survives
	return c
}

// Marshal renders the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling configuration: %w", err)
	}
	return data, nil
}

// InputOptions returns the loader options described by the configuration
func (c Config) InputOptions() (io.FileOptions, error) {
	opts := io.DefaultFileOptions()

	format, err := io.ParseFormat(c.InputFormat)
	if err != nil {
		return opts, err
	}
	delimiter, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return opts, err
	}
	comment, err := parseRune(c.Comment)
	if err != nil {
		return opts, err
	}

	opts.Format = format
	opts.CSV.Delimiter = delimiter
	opts.CSV.Comment = comment
	opts.CSV.Header = c.Header
	opts.CSV.SkipInitialSpace = c.TrimSpace
	opts.CSV.LazyQuotes = c.LazyQuotes
	opts.CSV.Encoding = c.Encoding
	return opts, nil
}

// OutputOptions returns the writer options described by the configuration
func (c Config) OutputOptions() (io.FileOptions, error) {
	opts := io.DefaultFileOptions()

	format, err := io.ParseFormat(c.OutputFormat)
	if err != nil {
		return opts, err
	}
	outputDelimiter := c.OutputDelimiter
	if outputDelimiter == "" {
		outputDelimiter = c.Delimiter
	}
	delimiter, err := ParseDelimiter(outputDelimiter)
	if err != nil {
		return opts, err
	}

	opts.Format = format
	opts.CSV.Delimiter = delimiter
	opts.CSV.Header = c.Header
	opts.CSV.UseCRLF = c.CRLF
	opts.Parquet = io.ParquetOptions{
		Compression: c.Compression,
		BatchSize:   c.BatchSize,
	}
	return opts, nil
}

// ParseDelimiter converts a configured delimiter to a rune. The empty string
// yields a comma; "tab" and `\t` yield a tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, err := parseRune(s)
	if err != nil {
		return 0, err
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", r)
	}
	return r, nil
}

func parseRune(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("invalid character %q", s)
	}
	return r, nil
}

// flagKeys maps CLI flag names onto configuration keys where they differ.
var flagKeys = map[string]string{
	"type":     "join_type",
	"parallel": "parallel_load",
}

// cliOnlyFlags are flags that control the command itself and are never
// configuration values.
var cliOnlyFlags = map[string]bool{
	"config":       true,
	"print-config": true,
	"version":      true,
	"help":         true,
}

// Load builds a configuration from defaults, an optional YAML or JSON file,
// CSVJOIN_* environment variables and explicitly set flags, in increasing
// order of precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// CSVJOIN_OUTPUT_DELIMITER -> output_delimiter
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || cliOnlyFlags[f.Name] {
				return "", nil
			}
			// --no-header is the inverse of the header key
			if f.Name == "no-header" {
				noHeader, _ := flags.GetBool(f.Name)
				return "header", !noHeader
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
