package timebin

import (
	"fmt"
	"math"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/internal/options"
	"github.com/astrata-io/binseries/reduce"
)

// Option configures a Downsample call.
type Option = options.Option[*config]

type config struct {
	startScalar *chrono.Time
	starts      []chrono.Time
	endScalar   *chrono.Time
	ends        []chrono.Time
	sizeScalar  *chrono.Delta
	sizes       []chrono.Delta
	nBins       int
	nBinsSet    bool
	aggregate   reduce.Func
	warnf       func(string)
}

func newConfig() *config {
	return &config{}
}

func (c *config) warn(msg string) {
	if c.warnf != nil {
		c.warnf(msg)
	}
}

func validSize(d chrono.Delta) error {
	s := d.Seconds()
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidBinSize, s)
	}

	return nil
}

// WithBinSize sets a single bin width, producing regular contiguous bins.
func WithBinSize(size chrono.Delta) Option {
	return options.New(func(c *config) error {
		if err := validSize(size); err != nil {
			return err
		}
		c.sizeScalar = &size

		return nil
	})
}

// WithBinSizes sets one width per bin, producing contiguous bins of varying
// width. Every size must be positive.
func WithBinSizes(sizes []chrono.Delta) Option {
	return options.New(func(c *config) error {
		for _, size := range sizes {
			if err := validSize(size); err != nil {
				return err
			}
		}
		c.sizes = sizes

		return nil
	})
}

// WithBinStart sets the start time of the first bin.
func WithBinStart(start chrono.Time) Option {
	return options.NoError(func(c *config) {
		c.startScalar = &start
	})
}

// WithBinStarts sets the start time of every bin explicitly. When bin starts
// are given as an array, any configured bin count is ignored.
func WithBinStarts(starts []chrono.Time) Option {
	return options.NoError(func(c *config) {
		c.starts = starts
	})
}

// WithBinEnd sets the end time of the last bin.
func WithBinEnd(end chrono.Time) Option {
	return options.NoError(func(c *config) {
		c.endScalar = &end
	})
}

// WithBinEnds sets the end time of every bin explicitly.
func WithBinEnds(ends []chrono.Time) Option {
	return options.NoError(func(c *config) {
		c.ends = ends
	})
}

// WithNumBins sets the number of bins. It overrides the automatically
// derived bin count, except when bin starts are supplied as an array, in
// which case the array length wins and the count is ignored.
func WithNumBins(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w, got %d", ErrInvalidNumBins, n)
		}
		c.nBins = n
		c.nBinsSet = true

		return nil
	})
}

// WithAggregateFunc sets the per-bin aggregation function. The default is
// the optimized NaN-skipping mean; a custom function is applied per segment
// through the generic reduction path.
func WithAggregateFunc(fn reduce.Func) Option {
	return options.NoError(func(c *config) {
		c.aggregate = fn
	})
}

// WithWarningHandler sets the sink for non-fatal advisories such as the
// overlapping-bins warning. By default warnings are discarded.
func WithWarningHandler(fn func(msg string)) Option {
	return options.NoError(func(c *config) {
		c.warnf = fn
	})
}
