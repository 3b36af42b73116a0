package service

import (
	"context"
	"fmt"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// Subjects exposes CRUD over the subject catalog.
type Subjects struct {
	store  model.SubjectStore
	logger *logger.Logger
}

func NewSubjects(store model.SubjectStore, logger *logger.Logger) *Subjects {
	return &Subjects{
		store:  store,
		logger: logger.WithComponent("subjects"),
	}
}

func (s *Subjects) List(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list subjects", "error", err.Error())
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *Subjects) Get(ctx context.Context, id int64) (model.Subject, error) {
	subject, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Subject{}, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *Subjects) Create(ctx context.Context, name string) (model.Subject, error) {
	if name == "" {
		return model.Subject{}, model.NewInvalidInput("name is required")
	}

	subject, err := s.store.Create(ctx, model.Subject{Name: name})
	if err != nil {
		s.logger.Error("failed to create subject", "error", err.Error())
		return model.Subject{}, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("subject created", "subject_id", subject.ID)

	return subject, nil
}

func (s *Subjects) Update(ctx context.Context, id int64, name string) (model.Subject, error) {
	if name == "" {
		return model.Subject{}, model.NewInvalidInput("name is required")
	}

	subject, err := s.store.Update(ctx, model.Subject{ID: id, Name: name})
	if err != nil {
		return model.Subject{}, fmt.Errorf("failed to update subject: %w", err)
	}

	return subject, nil
}

// Delete removes the subject together with every grade row that
// references it.
func (s *Subjects) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	s.logger.Info("subject deleted", "subject_id", id)

	return nil
}
