package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
)

// SQLiteMeasurementRepo implements MeasurementRepo using a SQLite database.
type SQLiteMeasurementRepo struct {
	db db.DBTX
}

// NewSQLiteMeasurementRepo creates a new SQLiteMeasurementRepo.
func NewSQLiteMeasurementRepo(conn db.DBTX) *SQLiteMeasurementRepo {
	return &SQLiteMeasurementRepo{db: conn}
}

const measurementColumns = `id, study_id, operator, target, time_ms, recorded_at`

func (r *SQLiteMeasurementRepo) Create(ctx context.Context, m *domain.Measurement) error {
	query := `INSERT INTO measurements (` + measurementColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.StudyID,
		m.Operator,
		m.Target,
		m.TimeMs,
		formatTime(m.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting measurement: %w", err)
	}
	return nil
}

// CreateBatch inserts ms in order and stops at the first failure. Run it
// inside a UnitOfWork to make the batch atomic.
func (r *SQLiteMeasurementRepo) CreateBatch(ctx context.Context, ms []*domain.Measurement) error {
	for i, m := range ms {
		if err := r.Create(ctx, m); err != nil {
			return fmt.Errorf("measurement %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteMeasurementRepo) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE id = ?`
	m, err := scanMeasurement(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("measurement: %w", ErrNotFound)
	}
	return m, err
}

// ListByStudy returns measurements in recording order.
func (r *SQLiteMeasurementRepo) ListByStudy(ctx context.Context, studyID string) ([]*domain.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements
		WHERE study_id = ? ORDER BY recorded_at, id`
	rows, err := r.db.QueryContext(ctx, query, studyID)
	if err != nil {
		return nil, fmt.Errorf("listing measurements by study: %w", err)
	}
	defer rows.Close()

	var ms []*domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurements: %w", err)
	}
	return ms, nil
}

func (r *SQLiteMeasurementRepo) CountByStudy(ctx context.Context, studyID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements WHERE study_id = ?`, studyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting measurements: %w", err)
	}
	return n, nil
}

func (r *SQLiteMeasurementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}
	return requireAffected(res, "measurement")
}

func scanMeasurement(row rowScanner) (*domain.Measurement, error) {
	var m domain.Measurement
	var recordedAt string
	if err := row.Scan(&m.ID, &m.StudyID, &m.Operator, &m.Target, &m.TimeMs, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning measurement: %w", err)
	}
	var err error
	if m.RecordedAt, err = parseTime("recorded_at", recordedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
