// Package main provides the csvjoin command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/paveg/csvjoin/internal/config"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/paveg/csvjoin/internal/logging"
	"github.com/paveg/csvjoin/internal/pipeline"
	"github.com/paveg/csvjoin/internal/version"
	"github.com/spf13/cobra"
)

const positionalArgs = 5

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the csvjoin command.
func newRootCmd() *cobra.Command {
	var (
		cfgFile     string
		printConfig bool
	)

	info := version.Info()
	rootCmd := &cobra.Command{
		Use:   "csvjoin [flags] LEFT_FILE LEFT_KEY RIGHT_FILE RIGHT_KEY OUTPUT_FILE",
		Short: "Join two delimited files on a primary key column",
		Long: `csvjoin joins two tables on one key column each and writes the combined rows.

Each output row holds the left row's cells followed by the right row's cells.
A side without a matching key is filled with "null" once per column. Key
columns must exist in the header and hold unique values.

The output format follows the extension of OUTPUT_FILE: .json and .parquet
are recognised, anything else is written as delimited text.`,
		Example: `  csvjoin left.csv a right.csv m out.csv
  csvjoin -t full -d '|' address.txt PersonId names.txt Id out.parquet`,
		Version: info.Short(),
		Args: func(cmd *cobra.Command, args []string) error {
			if printConfig {
				return nil
			}
			return cobra.ExactArgs(positionalArgs)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			if printConfig {
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
			if cfgFile != "" {
				logger.Debug("using config file", "path", cfgFile)
			}

			runner := pipeline.New(
				pipeline.WithConfig(cfg),
				pipeline.WithLogger(logger),
				pipeline.WithPreview(cmd.OutOrStdout()),
			)
			summary, err := runner.Run(cmd.Context(), pipeline.Request{
				LeftPath:   args[0],
				LeftKey:    args[1],
				RightPath:  args[2],
				RightKey:   args[3],
				OutputPath: args[4],
				Kind:       cfg.JoinType,
			})
			if cfg.Metrics {
				metrics := runner.Metrics()
				pipeline.RenderMetrics(cmd.ErrOrStderr(), metrics.GetMetrics(), metrics.GetSummary())
			}
			if err != nil {
				return err
			}

			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s join: %d rows written to %s\n",
					summary.Kind, summary.OutputRows, args[4])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(info.String())

	flags := rootCmd.Flags()
	flags.SortFlags = false
	flags.StringP("type", "t", config.DefaultJoinType, "join type (left|right|inner|full)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("delimiter", "d", config.DefaultDelimiter, `input field delimiter (single character or "tab")`)
	flags.String("output-delimiter", "", "output field delimiter (default: input delimiter)")
	flags.String("comment", "", "skip input lines starting with this character")
	flags.Bool("no-header", false, "inputs have no header row; columns are named column_0..n")
	flags.Bool("lazy-quotes", false, "tolerate quotes inside unquoted fields")
	flags.Bool("trim-space", false, "trim leading space of input cells")
	flags.Bool("crlf", false, `terminate output lines with \r\n`)
	flags.Bool("strict", false, "require every row to have as many cells as the header")
	flags.Bool("parallel", false, "load both inputs concurrently")
	flags.String("encoding", config.DefaultEncoding, "input encoding (utf-8|utf-16|latin1|windows-1252)")
	flags.String("input-format", "", "input format (auto|csv|json|parquet)")
	flags.String("output-format", "", "output format (auto|csv|json|parquet)")
	flags.String("compression", config.DefaultCompression, "parquet compression (snappy|gzip|zstd|lz4|uncompressed)")
	flags.Int("batch-size", config.DefaultBatchSize, "parquet row group size")
	flags.Int("preview", 0, "print the first N result rows as a table")
	flags.Bool("metrics", false, "print per-stage timings to stderr")
	flags.StringVar(&cfgFile, "config", "", "YAML or JSON config file")
	flags.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")

	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return join.KindNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "csv", "json", "parquet"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}
