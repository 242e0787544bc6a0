package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyService_CreateAssignsIDAndTimestamps(t *testing.T) {
	studies, _, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewStudyService(studies, obs)
	ctx := context.Background()

	study := &domain.Study{Name: "  Picking  "}
	require.NoError(t, svc.Create(ctx, study))

	assert.NotEmpty(t, study.ID)
	assert.Equal(t, "Picking", study.Name)
	assert.False(t, study.CreatedAt.IsZero())

	require.Len(t, obs.events, 1)
	assert.Equal(t, UseCaseStudyCreate, obs.last().Name)
	assert.True(t, obs.last().Success)
	assert.Equal(t, study.ID, obs.last().Fields["study_id"])
}

func TestStudyService_CreateRejectsBlankName(t *testing.T) {
	studies, _, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewStudyService(studies, obs)

	err := svc.Create(context.Background(), &domain.Study{Name: " "})
	require.Error(t, err)
	assert.False(t, obs.last().Success)
	assert.Equal(t, err, obs.last().Err)
}

func TestStudyService_Resolve(t *testing.T) {
	studies, _, _ := setupRepos(t)
	svc := NewStudyService(studies)
	ctx := context.Background()

	study := &domain.Study{Name: "Packing"}
	require.NoError(t, svc.Create(ctx, study))

	byID, err := svc.Resolve(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, study.ID, byID.ID)

	byName, err := svc.Resolve(ctx, "packing")
	require.NoError(t, err)
	assert.Equal(t, study.ID, byName.ID)

	byPrefix, err := svc.Resolve(ctx, study.DisplayID())
	require.NoError(t, err)
	assert.Equal(t, study.ID, byPrefix.ID)

	_, err = svc.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "")
	assert.Error(t, err)
}

func TestStudyService_UpdateAndDelete(t *testing.T) {
	studies, _, _ := setupRepos(t)
	svc := NewStudyService(studies)
	ctx := context.Background()

	study := &domain.Study{Name: "Old"}
	require.NoError(t, svc.Create(ctx, study))

	study.Name = "New"
	require.NoError(t, svc.Update(ctx, study))
	fetched, err := svc.GetByID(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)

	require.NoError(t, svc.Delete(ctx, study.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStudyService_DeleteIsObserved(t *testing.T) {
	studies, _, _ := setupRepos(t)
	first, second := &recordingObserver{}, &recordingObserver{}
	svc := NewStudyService(studies, nil, first, second)
	ctx := context.Background()

	study := testutil.NewTestStudy("Replenishment")
	require.NoError(t, svc.Create(ctx, study))
	require.NoError(t, svc.Delete(ctx, study.ID))

	for _, obs := range []*recordingObserver{first, second} {
		assert.Equal(t, UseCaseStudyDelete, obs.last().Name)
		assert.Equal(t, study.ID, obs.last().Fields["study_id"])
		assert.True(t, obs.last().Success)
	}

	err := svc.Delete(ctx, study.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, first.last().Success)
}
