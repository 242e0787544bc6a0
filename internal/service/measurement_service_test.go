package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementService_Record(t *testing.T) {
	studies, measurements, uow := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewMeasurementService(measurements, uow, obs)
	ctx := context.Background()

	study := testutil.NewTestStudy("Record")
	require.NoError(t, studies.Create(ctx, study))

	m := &domain.Measurement{StudyID: study.ID, Operator: " Alice ", Target: "Pick", TimeMs: 1250}
	require.NoError(t, svc.Record(ctx, m))

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Alice", m.Operator)
	assert.False(t, m.RecordedAt.IsZero())

	list, err := svc.ListByStudy(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1250.0, list[0].TimeMs)
	assert.Equal(t, UseCaseMeasurementRecord, obs.last().Name)
	assert.True(t, obs.last().Success)
}

func TestMeasurementService_RecordRejectsInvalid(t *testing.T) {
	studies, measurements, uow := setupRepos(t)
	svc := NewMeasurementService(measurements, uow)
	ctx := context.Background()

	study := testutil.NewTestStudy("Invalid")
	require.NoError(t, studies.Create(ctx, study))

	tests := []struct {
		name string
		m    domain.Measurement
	}{
		{"negative", domain.Measurement{StudyID: study.ID, Operator: "A", Target: "T", TimeMs: -1}},
		{"blank operator", domain.Measurement{StudyID: study.ID, Operator: " ", Target: "T", TimeMs: 1}},
		{"blank target", domain.Measurement{StudyID: study.ID, Operator: "A", Target: "", TimeMs: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(ctx, &tt.m)
			assert.ErrorIs(t, err, msa.ErrInvalidRecord)
		})
	}

	n, err := measurements.CountByStudy(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMeasurementService_RecordUnknownStudy(t *testing.T) {
	_, measurements, uow := setupRepos(t)
	svc := NewMeasurementService(measurements, uow)

	err := svc.Record(context.Background(), &domain.Measurement{StudyID: "missing", Operator: "A", Target: "T", TimeMs: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeasurementService_RecordRollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	studies := repository.NewSQLiteStudyRepo(database)
	measurements := repository.NewSQLiteMeasurementRepo(database)
	ctx := context.Background()

	study := testutil.NewTestStudy("Rollback")
	require.NoError(t, studies.Create(ctx, study))

	injected := errors.New("write failed")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: injected}
	svc := NewMeasurementService(measurements, uow)

	err := svc.Record(ctx, &domain.Measurement{StudyID: study.ID, Operator: "A", Target: "T", TimeMs: 10})
	require.ErrorIs(t, err, injected)

	n, err := measurements.CountByStudy(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMeasurementService_Delete(t *testing.T) {
	studies, measurements, uow := setupRepos(t)
	svc := NewMeasurementService(measurements, uow)
	ctx := context.Background()

	study := seedCells(t, studies, measurements, testutil.Cells{"T1": {"A": {100, 101}}})
	list, err := svc.ListByStudy(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	_, err = svc.GetByID(ctx, list[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
