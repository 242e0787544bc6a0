package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/importer"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	studies  StudyService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(studies StudyService, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{studies: studies, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportMeasurements(ctx context.Context, filePath, studyRef string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema, studyRef)
}

// ImportFromSchema writes the study (when new) and every measurement in one
// transaction; any failure leaves the database untouched.
func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema, studyRef string) (result *ImportResult, err error) {
	fields := map[string]any{"study": studyRef}
	defer observe(ctx, s.observer, UseCaseImportMeasurements, time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	result = &ImportResult{}
	switch {
	case studyRef != "":
		if result.Study, err = s.studies.Resolve(ctx, studyRef); err != nil {
			return nil, err
		}
	case schema.Study != nil:
		now := time.Now().UTC()
		result.Study = &domain.Study{
			ID:          uuid.New().String(),
			Name:        schema.Study.Name,
			Description: schema.Study.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err = result.Study.Validate(); err != nil {
			return nil, err
		}
		result.StudyCreated = true
	default:
		return nil, fmt.Errorf("no target study: pass --study or add a study block to the file")
	}

	measurements := importer.Convert(schema, result.Study.ID, time.Now().UTC())
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if result.StudyCreated {
			if err := repository.NewSQLiteStudyRepo(tx).Create(ctx, result.Study); err != nil {
				return err
			}
		}
		return repository.NewSQLiteMeasurementRepo(tx).CreateBatch(ctx, measurements)
	})
	if err != nil {
		return nil, fmt.Errorf("importing measurements: %w", err)
	}

	result.MeasurementCount = len(measurements)
	fields["study_id"] = result.Study.ID
	fields["measurements"] = result.MeasurementCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	return fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
}
