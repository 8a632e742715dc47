// Package dataset loads PPG recordings from CSV files.
//
// A recording is one numeric column of a headed CSV file. Missing samples
// (empty cells, NaN, null, NA) are replaced with the mean of the present
// samples. Every load failure wraps [ppg.ErrData].
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ppg/measure/ppg"
	timestats "github.com/cwbudde/algo-ppg/stats/time"
)

// DefaultColumn is the header of the PPG column.
const DefaultColumn = "PPG"

// Recording is a loaded PPG series.
type Recording struct {
	Source  string
	Column  string
	Samples []float64
	Filled  int // missing samples replaced by the column mean
}

type loadConfig struct {
	column string
	logger *slog.Logger
}

// Option configures Load and Read.
type Option func(*loadConfig)

// WithColumn selects the column to read. Empty names are ignored.
func WithColumn(name string) Option {
	return func(c *loadConfig) {
		if name = strings.TrimSpace(name); name != "" {
			c.column = name
		}
	}
}

// WithLogger sets the logger used to report filled samples.
func WithLogger(l *slog.Logger) Option {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Load reads the recording stored in the CSV file at path.
func Load(path string, opts ...Option) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %w", ppg.ErrData, err)
	}
	defer f.Close()

	rec, err := Read(f, opts...)
	if err != nil {
		return Recording{}, fmt.Errorf("%s: %w", path, err)
	}
	rec.Source = path
	return rec, nil
}

// Read parses a headed CSV stream and returns the selected column.
func Read(r io.Reader, opts ...Option) (Recording, error) {
	cfg := loadConfig{column: DefaultColumn, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Recording{}, fmt.Errorf("%w: empty file", ppg.ErrData)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("%w: header: %w", ppg.ErrData, err)
	}

	col := columnIndex(header, cfg.column)
	if col < 0 {
		return Recording{}, fmt.Errorf("%w: no %q column", ppg.ErrData, cfg.column)
	}

	var (
		samples []float64
		acc     timestats.Accumulator
	)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Recording{}, fmt.Errorf("%w: %w", ppg.ErrData, err)
		}

		v := math.NaN()
		if col < len(record) {
			v, err = parseSample(record[col])
			if err != nil {
				return Recording{}, fmt.Errorf("%w: row %d: %w", ppg.ErrData, row, err)
			}
		}
		samples = append(samples, v)
		acc.Add(v)
	}

	if len(samples) == 0 {
		return Recording{}, fmt.Errorf("%w: %q column has no rows", ppg.ErrData, cfg.column)
	}
	if acc.Count() == 0 {
		return Recording{}, fmt.Errorf("%w: %q column has no values", ppg.ErrData, cfg.column)
	}

	filled := 0
	if acc.Skipped() > 0 {
		mean := acc.Mean()
		for i, v := range samples {
			if math.IsNaN(v) {
				samples[i] = mean
				filled++
			}
		}
		cfg.logger.Warn("missing samples filled with column mean",
			slog.String("column", cfg.column),
			slog.Int("count", filled),
			slog.Float64("mean", mean))
	}

	return Recording{Column: cfg.column, Samples: samples, Filled: filled}, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == name {
			return i
		}
	}
	return -1
}

// parseSample returns NaN for missing markers and rejects infinities.
func parseSample(field string) (float64, error) {
	field = strings.TrimSpace(field)
	switch strings.ToLower(field) {
	case "", "nan", "null", "na", "n/a", "none":
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("sample %q is not a number", field)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("sample %q is not finite", field)
	}
	return v, nil
}
