package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
)

// SQLiteStudyRepo implements StudyRepo using a SQLite database.
type SQLiteStudyRepo struct {
	db db.DBTX
}

// NewSQLiteStudyRepo creates a new SQLiteStudyRepo.
func NewSQLiteStudyRepo(conn db.DBTX) *SQLiteStudyRepo {
	return &SQLiteStudyRepo{db: conn}
}

const studyColumns = `id, name, description, created_at, updated_at`

func (r *SQLiteStudyRepo) Create(ctx context.Context, s *domain.Study) error {
	query := `INSERT INTO studies (` + studyColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting study: %w", err)
	}
	return nil
}

func (r *SQLiteStudyRepo) GetByID(ctx context.Context, id string) (*domain.Study, error) {
	query := `SELECT ` + studyColumns + ` FROM studies WHERE id = ?`
	return r.scanStudy(r.db.QueryRowContext(ctx, query, id))
}

// GetByName matches case-insensitively; when several studies share a name
// the oldest wins.
func (r *SQLiteStudyRepo) GetByName(ctx context.Context, name string) (*domain.Study, error) {
	query := `SELECT ` + studyColumns + ` FROM studies WHERE name = ? COLLATE NOCASE
		ORDER BY created_at LIMIT 1`
	return r.scanStudy(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteStudyRepo) List(ctx context.Context) ([]*domain.Study, error) {
	query := `SELECT ` + studyColumns + ` FROM studies ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing studies: %w", err)
	}
	defer rows.Close()

	var studies []*domain.Study
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		studies = append(studies, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating studies: %w", err)
	}
	return studies, nil
}

func (r *SQLiteStudyRepo) Update(ctx context.Context, s *domain.Study) error {
	query := `UPDATE studies SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.Description, formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating study: %w", err)
	}
	return requireAffected(res, "study")
}

// Delete removes the study; its measurements go with it via ON DELETE CASCADE.
func (r *SQLiteStudyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM studies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study: %w", err)
	}
	return requireAffected(res, "study")
}

func (r *SQLiteStudyRepo) scanStudy(row *sql.Row) (*domain.Study, error) {
	s, err := r.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("study: %w", ErrNotFound)
	}
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteStudyRepo) scanRow(row rowScanner) (*domain.Study, error) {
	var s domain.Study
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning study: %w", err)
	}

	var err error
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
