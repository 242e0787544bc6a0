package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.StudyRepo,
	repository.MeasurementRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteStudyRepo(database),
		repository.NewSQLiteMeasurementRepo(database),
		testutil.NewTestUoW(database)
}

// seedCells stores a study holding cells and returns it.
func seedCells(t *testing.T, studies repository.StudyRepo, measurements repository.MeasurementRepo, cells testutil.Cells) *domain.Study {
	t.Helper()
	ctx := context.Background()
	study := testutil.NewTestStudy("Seeded")
	require.NoError(t, studies.Create(ctx, study))
	for _, m := range cells.Measurements(study.ID) {
		require.NoError(t, measurements.Create(ctx, &m))
	}
	return study
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}
