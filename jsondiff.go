package jsondiff

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
)

// DefaultMaxMatchDepth is the similarity scoring depth used when no
// OptionMaxMatchDepth is given
const DefaultMaxMatchDepth = 16

// Config are any possible configuration parameters for calculating diffs
type Config struct {
	// IgnoreOrder pairs sequence elements by similarity instead of position
	IgnoreOrder bool
	// MaxMatchDepth bounds how deep similarity scoring recurses below a
	// sequence element. Deeper values are compared by exact equality only.
	// Values <= 0 remove the limit
	MaxMatchDepth int
	// ReportRepetition reports elements that occur a different number of
	// times on each side. When false, an unmatched element with an equal
	// counterpart on the other side is not an edit
	ReportRepetition bool
	// DisableCache turns off memoization of similarity scores. Results are
	// the same either way
	DisableCache bool
	// Strategy overrides the comparison strategy, nil uses a Matcher built
	// from this config
	Strategy Strategy
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
	// Logger receives diagnostic key/value pairs, defaults to a nop logger
	Logger log.Logger
}

// DefaultConfig returns the configuration New starts from
func DefaultConfig() *Config {
	return &Config{
		IgnoreOrder:   true,
		MaxMatchDepth: DefaultMaxMatchDepth,
		Logger:        log.NewNopLogger(),
	}
}

// Option is a function that adjusts a config, zero or more Options
// can be passed to New
type Option func(cfg *Config)

// OptionIgnoreOrder sets whether sequences are compared as unordered
// collections
func OptionIgnoreOrder(ignore bool) Option {
	return func(cfg *Config) {
		cfg.IgnoreOrder = ignore
	}
}

// OptionMaxMatchDepth limits similarity scoring depth
func OptionMaxMatchDepth(depth int) Option {
	return func(cfg *Config) {
		cfg.MaxMatchDepth = depth
	}
}

// OptionReportRepetition turns on reporting of duplicate count mismatches
func OptionReportRepetition(report bool) Option {
	return func(cfg *Config) {
		cfg.ReportRepetition = report
	}
}

// OptionDisableCache turns off similarity score memoization
func OptionDisableCache(cfg *Config) {
	cfg.DisableCache = true
}

// OptionStrategy swaps the comparison strategy
func OptionStrategy(s Strategy) Option {
	return func(cfg *Config) {
		cfg.Strategy = s
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// OptionLogger sets the diagnostic logger
func OptionLogger(logger log.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

func newConfig(opts []Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	return cfg
}

// Result is the outcome of a diff
type Result struct {
	// Edits grouped by kind (ADD, DEL, CHG), depth-first document order
	// within each kind. Empty when the documents are equal
	Edits Edits
	// Warnings are non-fatal notes about how the diff was calculated
	Warnings []MatchDepthExceededWarning
}

// Differ compares documents with a configured strategy & classifies the
// output into Edits
type Differ struct {
	cfg      *Config
	strategy Strategy
}

// New creates a Differ, defaults to order-insensitive similarity matching
func New(opts ...Option) *Differ {
	cfg := newConfig(opts)
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = &Matcher{cfg: cfg}
	}
	return &Differ{cfg: cfg, strategy: strategy}
}

// Diff computes the edits between left & right. It fails with an
// *IncomparableInputError if either root is nil, or with the context error
// if ctx is done before the comparison finishes
func (d *Differ) Diff(ctx context.Context, left, right Value) (*Result, error) {
	if err := checkRoot("left", left); err != nil {
		return nil, err
	}
	if err := checkRoot("right", right); err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := d.strategy.Compare(ctx, left, right)
	if err != nil {
		return nil, err
	}

	edits, warnings := Classify(records)

	if d.cfg.Stats != nil {
		d.cfg.Stats.calc(left, right, edits)
	}

	d.cfg.Logger.Log(
		"strategy", fmt.Sprintf("%T", d.strategy),
		"edits", len(edits),
		"warnings", len(warnings),
		"took", time.Since(start),
	)
	return &Result{Edits: edits, Warnings: warnings}, nil
}

// Compare is a convenience wrapper around New(opts...).Diff using a
// background context
func Compare(left, right Value, opts ...Option) (*Result, error) {
	return New(opts...).Diff(context.Background(), left, right)
}

// DiffInterface converts two generic go values with FromInterface & compares
// them. Values of unsupported types return an *IncomparableInputError naming
// the offending side
func DiffInterface(ctx context.Context, left, right interface{}, opts ...Option) (*Result, error) {
	l, err := FromInterface(left)
	if err != nil {
		return nil, &IncomparableInputError{Side: "left", Value: left}
	}
	r, err := FromInterface(right)
	if err != nil {
		return nil, &IncomparableInputError{Side: "right", Value: right}
	}
	return New(opts...).Diff(ctx, l, r)
}
