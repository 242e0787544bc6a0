package service

import (
	"context"

	"github.com/alexanderramin/timestudy/internal/contract"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/importer"
)

type StudyService interface {
	Create(ctx context.Context, s *domain.Study) error
	GetByID(ctx context.Context, id string) (*domain.Study, error)
	// Resolve accepts a full ID, an ID prefix of at least 8 characters or a
	// study name.
	Resolve(ctx context.Context, ref string) (*domain.Study, error)
	List(ctx context.Context) ([]*domain.Study, error)
	Update(ctx context.Context, s *domain.Study) error
	Delete(ctx context.Context, id string) error
}

type MeasurementService interface {
	Record(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	ListByStudy(ctx context.Context, studyID string) ([]*domain.Measurement, error)
	CountByStudy(ctx context.Context, studyID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a measurement import.
type ImportResult struct {
	Study            *domain.Study
	StudyCreated     bool
	MeasurementCount int
}

type ImportService interface {
	// ImportMeasurements loads a JSON or YAML file. studyRef selects an
	// existing study; when empty the file's study block creates one.
	ImportMeasurements(ctx context.Context, filePath, studyRef string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema, studyRef string) (*ImportResult, error)
}

type AnalysisService interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (*contract.AnalysisResponse, error)
}
