// Package pipeline runs a complete join: it loads both inputs, builds and
// validates their tables, executes the join and writes the result.
//
// The join kind is resolved before any file is touched so an invalid kind
// fails fast. The context is checked between stages.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/paveg/csvjoin/internal/config"
	csvio "github.com/paveg/csvjoin/internal/io"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/paveg/csvjoin/internal/logging"
	"github.com/paveg/csvjoin/internal/monitoring"
	"github.com/paveg/csvjoin/internal/parallel"
	"github.com/paveg/csvjoin/internal/table"
)

// Stage names recorded by the metrics collector
const (
	StageLoad  = "load"
	StageIndex = "index"
	StageJoin  = "join"
	StageWrite = "write"
)

// Request names the two inputs, their key columns and the output file.
type Request struct {
	LeftPath   string
	LeftKey    string
	RightPath  string
	RightKey   string
	OutputPath string
	// Kind is a join kind token; empty uses the configured join type
	Kind string
}

// Summary describes a finished run.
type Summary struct {
	Kind        join.Kind
	LeftRows    int
	RightRows   int
	OutputRows  int
	OutputWidth int
	MatchedKeys int
	Duration    time.Duration
	Metrics     monitoring.MetricsSummary
}

// Runner executes join requests.
type Runner struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *monitoring.MetricsCollector
	preview io.Writer
}

// Option configures a Runner
type Option func(*Runner)

// WithConfig sets the configuration (default: config.NewConfig()).
func WithConfig(cfg config.Config) Option {
	return func(r *Runner) { r.cfg = cfg }
}

// WithLogger sets the logger (default: the logger stored in the context).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics sets the metrics collector. By default one is created and
// enabled when the configuration asks for metrics.
func WithMetrics(mc *monitoring.MetricsCollector) Option {
	return func(r *Runner) { r.metrics = mc }
}

// WithPreview renders the first cfg.Preview result rows to w.
func WithPreview(w io.Writer) Option {
	return func(r *Runner) { r.preview = w }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{cfg: config.NewConfig()}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = monitoring.NewMetricsCollector(r.cfg.Metrics)
	}
	return r
}

// Run executes req with a Runner built from opts.
func Run(ctx context.Context, req Request, opts ...Option) (*Summary, error) {
	return New(opts...).Run(ctx, req)
}

// Metrics returns the collector used by the runner.
func (r *Runner) Metrics() *monitoring.MetricsCollector {
	return r.metrics
}

// Run executes req.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	kind, err := r.resolveKind(req.Kind)
	if err != nil {
		return nil, err
	}

	inputOpts, err := r.cfg.InputOptions()
	if err != nil {
		return nil, err
	}
	outputOpts, err := r.cfg.OutputOptions()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sides := []side{
		{name: "left", path: req.LeftPath, key: req.LeftKey},
		{name: "right", path: req.RightPath, key: req.RightKey},
	}
	tables, err := r.loadTables(ctx, logger, sides, inputOpts)
	if err != nil {
		return nil, err
	}
	left, right := tables[0], tables[1]

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result *join.Result
	err = r.metrics.RecordStage(StageJoin, kind.String(), func() (int, error) {
		var joinErr error
		result, joinErr = join.Execute(kind, left, right)
		if joinErr != nil {
			return 0, joinErr
		}
		return result.Len(), nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("joined", "kind", kind.String(), "rows", result.Len(), "columns", result.Width())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = r.metrics.RecordStage(StageWrite, req.OutputPath, func() (int, error) {
		return result.Len(), csvio.WriteFile(req.OutputPath, result.Header, result.Rows, outputOpts)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("wrote output", "source", req.OutputPath, "rows", result.Len())

	if r.preview != nil && r.cfg.Preview > 0 {
		RenderPreview(r.preview, result, r.cfg.Preview)
	}

	summary := &Summary{
		Kind:        kind,
		LeftRows:    left.Len(),
		RightRows:   right.Len(),
		OutputRows:  result.Len(),
		OutputWidth: result.Width(),
		MatchedKeys: join.MatchedKeys(left, right),
		Duration:    time.Since(start),
		Metrics:     r.metrics.GetSummary(),
	}
	logger.Info("join complete",
		"kind", kind.String(),
		"left_rows", summary.LeftRows,
		"right_rows", summary.RightRows,
		"rows", summary.OutputRows,
		"matched", summary.MatchedKeys,
		"duration", summary.Duration)

	return summary, nil
}

// resolveKind parses the request kind, falling back to the configured join
// type. DefaultKind applies only when neither is set.
func (r *Runner) resolveKind(token string) (join.Kind, error) {
	if token == "" {
		token = r.cfg.JoinType
	}
	if token == "" {
		return join.DefaultKind, nil
	}
	return join.ParseKind(token)
}

// side is one input of the join.
type side struct {
	name string
	path string
	key  string
}

type loadResult struct {
	table *table.Table
	err   error
}

// loadTables loads every side. With parallel loading enabled the sides are
// loaded concurrently; either way the first failing side in input order is
// the one reported.
func (r *Runner) loadTables(ctx context.Context, logger *slog.Logger, sides []side, opts csvio.FileOptions) ([]*table.Table, error) {
	tables := make([]*table.Table, len(sides))

	if !r.cfg.ParallelLoad {
		for i, s := range sides {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t, err := r.loadTable(logger, s, opts, r.metrics.RecordStage)
			if err != nil {
				return nil, err
			}
			tables[i] = t
		}
		return tables, nil
	}

	pool := parallel.NewWorkerPool(ctx, len(sides))
	defer pool.Close()

	results := parallel.ProcessIndexed(pool, sides, func(_ int, s side) loadResult {
		t, err := r.loadTable(logger, s, opts, r.metrics.RecordParallelStage)
		return loadResult{table: t, err: err}
	})
	if err := pool.Err(); err != nil {
		return nil, err
	}

	for i, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		tables[i] = res.table
	}
	return tables, nil
}

// recordFunc records one stage on the runner's collector.
type recordFunc func(stage, source string, fn func() (int, error)) error

func (r *Runner) loadTable(logger *slog.Logger, s side, opts csvio.FileOptions, record recordFunc) (*table.Table, error) {
	logger.Debug("loading", "side", s.name, "source", s.path, "key", s.key)

	var records *csvio.Records
	err := record(StageLoad, s.path, func() (int, error) {
		var readErr error
		records, readErr = csvio.ReadFile(s.path, opts)
		if readErr != nil {
			return 0, readErr
		}
		return len(records.Rows), nil
	})
	if err != nil {
		return nil, err
	}

	var tableOpts []table.Option
	if r.cfg.Strict {
		tableOpts = append(tableOpts, table.WithStrictRowWidth())
	}

	var t *table.Table
	err = record(StageIndex, s.path, func() (int, error) {
		var buildErr error
		t, buildErr = table.New(records.Header, records.Rows, s.key, s.path, tableOpts...)
		if buildErr != nil {
			return 0, buildErr
		}
		return t.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	if n := raggedRows(t); n > 0 {
		logger.Warn("rows differ in width from the header", "source", s.path, "rows", n, "columns", t.Width())
	}
	logger.Debug("loaded", "side", s.name, "source", s.path, "rows", t.Len(), "columns", t.Width())
	return t, nil
}

// raggedRows counts body rows whose width differs from the header.
func raggedRows(t *table.Table) int {
	n := 0
	for _, row := range t.Body() {
		if len(row) != t.Width() {
			n++
		}
	}
	return n
}
