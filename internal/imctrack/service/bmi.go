package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/idx"
)

// Compute returns the raw body-mass index for a weight in kilograms and a
// height in metres. Range validation happens upstream in the HTTP layer, so
// no special-casing here.
func Compute(weightKg, heightM float64) float64 {
	return weightKg / (heightM * heightM)
}

// Round rounds half away from zero to the requested decimal count.
func Round(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}

// Categorize maps a BMI value onto its weight category.
func Categorize(bmi float64) domain.Category {
	switch {
	case bmi < 18.5:
		return domain.CategoryBajoPeso
	case bmi < 25:
		return domain.CategoryNormal
	case bmi < 30:
		return domain.CategorySobrepeso
	default:
		return domain.CategoryObeso
	}
}

// BmiService persists calculations and serves history pages.
type BmiService struct {
	Store store.Store
}

// Calculate computes, categorizes and stores one BMI record for the user.
func (s *BmiService) Calculate(ctx context.Context, user domain.User, heightM, weightKg float64) (domain.BmiRecord, error) {
	bmi := Round(Compute(weightKg, heightM), 2)

	rec := domain.BmiRecord{
		ID:         idx.New().String(),
		UserID:     user.ID,
		Height:     heightM,
		Weight:     weightKg,
		Bmi:        bmi,
		Category:   Categorize(bmi),
		ComputedAt: time.Now().UTC(),
	}

	if err := s.Store.BmiRecords().CreateRecord(ctx, rec); err != nil {
		return domain.BmiRecord{}, fmt.Errorf("storing bmi record: %w", err)
	}
	return rec, nil
}

// HistoryQuery is a validated pagination request. Zero values are not
// allowed; the HTTP layer fills in the defaults.
type HistoryQuery struct {
	Order   store.SortOrder
	Page    int64 // 1-based
	PerPage int64
}

// HistoryPage is one page of a user's calculation history.
type HistoryPage struct {
	Records    []domain.BmiRecord
	Page       int64
	PerPage    int64
	Total      int64
	TotalPages int64
}

// History returns the requested page of the user's records.
func (s *BmiService) History(ctx context.Context, userID string, q HistoryQuery) (HistoryPage, error) {
	total, err := s.Store.BmiRecords().CountByUser(ctx, userID)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("counting bmi records: %w", err)
	}

	offset := (q.Page - 1) * q.PerPage
	records, err := s.Store.BmiRecords().ListByUser(ctx, userID, q.Order, q.PerPage, offset)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("listing bmi records: %w", err)
	}

	totalPages := total / q.PerPage
	if total%q.PerPage != 0 {
		totalPages++
	}

	return HistoryPage{
		Records:    records,
		Page:       q.Page,
		PerPage:    q.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Dashboard aggregates the user's full history into series and statistics.
func (s *BmiService) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	records, err := s.Store.BmiRecords().ListAllByUserAsc(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("listing bmi records: %w", err)
	}
	return BuildDashboard(records), nil
}
