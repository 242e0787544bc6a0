package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/timestudy/internal/contract"
	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/alexanderramin/timestudy/internal/repository"
)

type analysisService struct {
	uow      db.UnitOfWork
	analyzer *msa.Analyzer
	observer UseCaseObserver
}

// NewAnalysisService wires the engine to storage. A study and its
// measurements are read in one read transaction so a concurrent import
// cannot split them. logger receives engine warnings; it may be nil.
func NewAnalysisService(uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) AnalysisService {
	return &analysisService{
		uow:      uow,
		analyzer: msa.NewAnalyzer(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analysisService) Analyze(ctx context.Context, req contract.AnalysisRequest) (resp *contract.AnalysisResponse, err error) {
	fields := map[string]any{"study_id": req.StudyID, "transform": string(req.Config.Transform)}
	defer observe(ctx, s.observer, UseCaseAnalysisRun, time.Now().UTC(), fields, &err)

	var (
		study  *domain.Study
		stored []*domain.Measurement
	)
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if study, err = repository.NewSQLiteStudyRepo(tx).GetByID(ctx, req.StudyID); err != nil {
			return err
		}
		stored, err = repository.NewSQLiteMeasurementRepo(tx).ListByStudy(ctx, study.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.AnalysisError{
				Code:    contract.ErrStudyNotFound,
				Message: fmt.Sprintf("study %q does not exist", req.StudyID),
				Err:     err,
			}
		}
		return nil, err
	}

	ms := make([]domain.Measurement, len(stored))
	for i, m := range stored {
		ms[i] = *m
	}
	fields["measurements"] = len(ms)

	result, err := s.analyzer.Analyze(ms, req.Config)
	if err != nil {
		return nil, &contract.AnalysisError{
			Code:    contract.AnalysisErrorCodeFor(err),
			Message: err.Error(),
			Err:     err,
		}
	}
	fields["grr_pct"] = result.GageRRPercent
	fields["status"] = string(result.Status)

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	grouped, err := msa.GroupMeasurements(ms)
	if err != nil {
		return nil, err
	}
	return &contract.AnalysisResponse{
		GeneratedAt:      now,
		Study:            study,
		MeasurementCount: len(ms),
		Operators:        grouped.Operators,
		Targets:          grouped.Targets,
		Result:           result,
	}, nil
}
