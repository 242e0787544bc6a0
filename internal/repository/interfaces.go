package repository

import (
	"context"

	"github.com/alexanderramin/timestudy/internal/domain"
)

type StudyRepo interface {
	Create(ctx context.Context, s *domain.Study) error
	GetByID(ctx context.Context, id string) (*domain.Study, error)
	GetByName(ctx context.Context, name string) (*domain.Study, error)
	List(ctx context.Context) ([]*domain.Study, error)
	Update(ctx context.Context, s *domain.Study) error
	Delete(ctx context.Context, id string) error
}

type MeasurementRepo interface {
	Create(ctx context.Context, m *domain.Measurement) error
	CreateBatch(ctx context.Context, ms []*domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	ListByStudy(ctx context.Context, studyID string) ([]*domain.Measurement, error)
	CountByStudy(ctx context.Context, studyID string) (int, error)
	Delete(ctx context.Context, id string) error
}
