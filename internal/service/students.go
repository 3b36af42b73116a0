package service

import (
	"context"
	"fmt"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// Students exposes CRUD over the student roster.
type Students struct {
	store  model.StudentStore
	logger *logger.Logger
}

func NewStudents(store model.StudentStore, logger *logger.Logger) *Students {
	return &Students{
		store:  store,
		logger: logger.WithComponent("students"),
	}
}

func (s *Students) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list students", "error", err.Error())
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *Students) Get(ctx context.Context, id int64) (model.Student, error) {
	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *Students) Create(ctx context.Context, firstName, lastName string) (model.Student, error) {
	if firstName == "" || lastName == "" {
		return model.Student{}, model.NewInvalidInput("first name and last name are required")
	}

	student, err := s.store.Create(ctx, model.Student{FirstName: firstName, LastName: lastName})
	if err != nil {
		s.logger.Error("failed to create student", "error", err.Error())
		return model.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("student created", "student_id", student.ID)

	return student, nil
}

func (s *Students) Update(ctx context.Context, id int64, firstName, lastName string) (model.Student, error) {
	if firstName == "" || lastName == "" {
		return model.Student{}, model.NewInvalidInput("first name and last name are required")
	}

	student, err := s.store.Update(ctx, model.Student{ID: id, FirstName: firstName, LastName: lastName})
	if err != nil {
		return model.Student{}, fmt.Errorf("failed to update student: %w", err)
	}

	return student, nil
}

// Delete removes the student together with every grade row that
// references them.
func (s *Students) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("student deleted", "student_id", id)

	return nil
}
