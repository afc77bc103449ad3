package sqlite

import (
	"context"
	"database/sql"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
)

type bmiRecordsRepo struct {
	q querier
}

const bmiColumns = `id, user_id, height, weight, bmi, category, computed_at`

func (r *bmiRecordsRepo) CreateRecord(ctx context.Context, rec domain.BmiRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO bmi_records (id, user_id, height, weight, bmi, category, computed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Height, rec.Weight, rec.Bmi, string(rec.Category), rec.ComputedAt,
	)
	return err
}

func (r *bmiRecordsRepo) GetRecordByID(ctx context.Context, id string) (domain.BmiRecord, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+bmiColumns+` FROM bmi_records WHERE id = ?`, id)
	return scanBmiRecord(row)
}

func (r *bmiRecordsRepo) ListByUser(
	ctx context.Context,
	userID string,
	order store.SortOrder,
	limit, offset int64,
) ([]domain.BmiRecord, error) {
	// The direction cannot be a bind parameter; order is a closed enum so
	// interpolating it is safe.
	direction := "DESC"
	if order == store.SortAsc {
		direction = "ASC"
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+bmiColumns+` FROM bmi_records
		 WHERE user_id = ?
		 ORDER BY computed_at `+direction+`, id `+direction+`
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBmiRecords(rows)
}

func (r *bmiRecordsRepo) ListAllByUserAsc(ctx context.Context, userID string) ([]domain.BmiRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+bmiColumns+` FROM bmi_records
		 WHERE user_id = ?
		 ORDER BY computed_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBmiRecords(rows)
}

func (r *bmiRecordsRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bmi_records WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func scanBmiRecord(row rowScanner) (domain.BmiRecord, error) {
	var rec domain.BmiRecord
	var category string
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Height, &rec.Weight, &rec.Bmi,
		&category, &rec.ComputedAt,
	)
	if err != nil {
		return domain.BmiRecord{}, mapNotFound(err)
	}
	rec.Category = domain.Category(category)
	return rec, nil
}

func collectBmiRecords(rows *sql.Rows) ([]domain.BmiRecord, error) {
	var records []domain.BmiRecord
	for rows.Next() {
		rec, err := scanBmiRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
