package service

import (
	"math"
	"time"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
)

// SeriesPoint is one history entry projected onto the dashboard time series.
type SeriesPoint struct {
	Date   time.Time
	Bmi    float64
	Weight float64
}

// Stats holds the summary statistics of one measurement sequence.
type Stats struct {
	Mean   float64
	StdDev float64
}

// CategoryCounts tallies how often each weight category occurs in a history.
type CategoryCounts struct {
	BajoPeso  int
	Normal    int
	Sobrepeso int
	Obeso     int
}

// Dashboard is the aggregate view over a user's complete history. Series
// preserves ascending chronological order.
type Dashboard struct {
	Series      []SeriesPoint
	WeightStats Stats
	BmiStats    Stats
	Categories  CategoryCounts
}

// Mean returns the arithmetic mean rounded to 2 decimals, or 0 for an empty
// input. The empty case is an explicit edge case, not an error: a user with
// no history gets an all-zero dashboard.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Round(rawMean(values), 2)
}

// StdDev returns the population standard deviation (divide by N, not N-1)
// rounded to 2 decimals. Empty and single-element inputs yield 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := rawMean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return Round(math.Sqrt(sum/float64(len(values))), 2)
}

// rawMean is the unrounded mean, shared by Mean and StdDev so the deviation
// is computed against the exact mean rather than the presented one.
func rawMean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Tally counts occurrences of each category label. Unrecognized labels are
// silently ignored, mirroring the original API behaviour.
func Tally(categories []domain.Category) CategoryCounts {
	var counts CategoryCounts
	for _, c := range categories {
		switch c {
		case domain.CategoryBajoPeso:
			counts.BajoPeso++
		case domain.CategoryNormal:
			counts.Normal++
		case domain.CategorySobrepeso:
			counts.Sobrepeso++
		case domain.CategoryObeso:
			counts.Obeso++
		}
	}
	return counts
}

// BuildDashboard maps records (already in ascending chronological order)
// onto the dashboard: a date/bmi/weight series plus independent statistics
// for the weight and bmi sequences and a category tally.
func BuildDashboard(records []domain.BmiRecord) Dashboard {
	series := make([]SeriesPoint, 0, len(records))
	weights := make([]float64, 0, len(records))
	bmis := make([]float64, 0, len(records))
	categories := make([]domain.Category, 0, len(records))

	for _, rec := range records {
		series = append(series, SeriesPoint{
			Date:   rec.ComputedAt,
			Bmi:    rec.Bmi,
			Weight: rec.Weight,
		})
		weights = append(weights, rec.Weight)
		bmis = append(bmis, rec.Bmi)
		categories = append(categories, rec.Category)
	}

	return Dashboard{
		Series:      series,
		WeightStats: Stats{Mean: Mean(weights), StdDev: StdDev(weights)},
		BmiStats:    Stats{Mean: Mean(bmis), StdDev: StdDev(bmis)},
		Categories:  Tally(categories),
	}
}
