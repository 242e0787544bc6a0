package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/google/uuid"
)

type measurementService struct {
	measurements repository.MeasurementRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewMeasurementService(measurements repository.MeasurementRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MeasurementService {
	return &measurementService{
		measurements: measurements,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Record validates m with the same rules the analyzer applies, then stores
// it after confirming the study exists.
func (s *measurementService) Record(ctx context.Context, m *domain.Measurement) (err error) {
	fields := map[string]any{"study_id": m.StudyID, "operator": m.Operator, "target": m.Target}
	defer observe(ctx, s.observer, UseCaseMeasurementRecord, time.Now().UTC(), fields, &err)

	m.Operator = strings.TrimSpace(m.Operator)
	m.Target = strings.TrimSpace(m.Target)
	if err = msa.ValidateMeasurement(0, *m); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now().UTC()
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteStudyRepo(tx).GetByID(ctx, m.StudyID); err != nil {
			return err
		}
		return repository.NewSQLiteMeasurementRepo(tx).Create(ctx, m)
	})
}

func (s *measurementService) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	return s.measurements.GetByID(ctx, id)
}

func (s *measurementService) ListByStudy(ctx context.Context, studyID string) ([]*domain.Measurement, error) {
	return s.measurements.ListByStudy(ctx, studyID)
}

func (s *measurementService) CountByStudy(ctx context.Context, studyID string) (int, error) {
	return s.measurements.CountByStudy(ctx, studyID)
}

func (s *measurementService) Delete(ctx context.Context, id string) error {
	return s.measurements.Delete(ctx, id)
}
