package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/google/uuid"
)

// minIDPrefix is the shortest ID prefix Resolve accepts, matching DisplayID.
const minIDPrefix = 8

type studyService struct {
	studies  repository.StudyRepo
	observer UseCaseObserver
}

func NewStudyService(studies repository.StudyRepo, observers ...UseCaseObserver) StudyService {
	return &studyService{studies: studies, observer: useCaseObserverOrNoop(observers)}
}

func (s *studyService) Create(ctx context.Context, study *domain.Study) (err error) {
	fields := map[string]any{"name": study.Name}
	defer observe(ctx, s.observer, UseCaseStudyCreate, time.Now().UTC(), fields, &err)

	study.Name = strings.TrimSpace(study.Name)
	if err = study.Validate(); err != nil {
		return err
	}
	if study.ID == "" {
		study.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	study.CreatedAt = now
	study.UpdatedAt = now
	fields["study_id"] = study.ID

	return s.studies.Create(ctx, study)
}

func (s *studyService) GetByID(ctx context.Context, id string) (*domain.Study, error) {
	return s.studies.GetByID(ctx, id)
}

func (s *studyService) Resolve(ctx context.Context, ref string) (*domain.Study, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("study reference is required")
	}

	study, err := s.studies.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return study, err
	}

	study, err = s.studies.GetByName(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return study, err
	}

	if len(ref) < minIDPrefix {
		return nil, fmt.Errorf("study %q: %w", ref, repository.ErrNotFound)
	}
	all, err := s.studies.List(ctx)
	if err != nil {
		return nil, err
	}
	var match *domain.Study
	for _, st := range all {
		if strings.HasPrefix(st.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("study prefix %q is ambiguous", ref)
			}
			match = st
		}
	}
	if match == nil {
		return nil, fmt.Errorf("study %q: %w", ref, repository.ErrNotFound)
	}
	return match, nil
}

func (s *studyService) List(ctx context.Context) ([]*domain.Study, error) {
	return s.studies.List(ctx)
}

func (s *studyService) Update(ctx context.Context, study *domain.Study) error {
	study.Name = strings.TrimSpace(study.Name)
	if err := study.Validate(); err != nil {
		return err
	}
	study.UpdatedAt = time.Now().UTC()
	return s.studies.Update(ctx, study)
}

// Delete removes the study; its measurements go with it through the
// foreign-key cascade.
func (s *studyService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, UseCaseStudyDelete, time.Now().UTC(), map[string]any{"study_id": id}, &err)
	return s.studies.Delete(ctx, id)
}
