package service

import (
	"context"
	"fmt"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// Grades exposes CRUD over grade rows plus the aggregate queries that
// join them with students and subjects.
//
// Every aggregate treats an empty result set as NotFound rather than
// an empty list. This mirrors the REST contract clients already depend
// on and is applied uniformly across all five aggregates.
type Grades struct {
	store  model.GradeStore
	logger *logger.Logger
}

func NewGrades(store model.GradeStore, logger *logger.Logger) *Grades {
	return &Grades{
		store:  store,
		logger: logger.WithComponent("grades"),
	}
}

func validateScores(scores ...float64) error {
	for i, score := range scores {
		if score < 0 || score > 10 {
			return model.NewInvalidInput(fmt.Sprintf("score%d must be between 0 and 10", i+1))
		}
	}
	return nil
}

func (s *Grades) List(ctx context.Context) ([]model.Grade, error) {
	grades, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list grades", "error", err.Error())
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	return grades, nil
}

func (s *Grades) Get(ctx context.Context, id int64) (model.Grade, error) {
	grade, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Grade{}, fmt.Errorf("failed to get grade: %w", err)
	}
	return grade, nil
}

// Create validates the scores and delegates the existence of the
// referenced student and subject to the store's foreign keys.
func (s *Grades) Create(ctx context.Context, studentID, subjectID int64, score1, score2, score3 float64) (model.Grade, error) {
	if studentID <= 0 || subjectID <= 0 {
		return model.Grade{}, model.NewInvalidInput("student_id and subject_id are required")
	}
	if err := validateScores(score1, score2, score3); err != nil {
		return model.Grade{}, err
	}

	grade, err := s.store.Create(ctx, model.Grade{
		StudentID: studentID,
		SubjectID: subjectID,
		Score1:    score1,
		Score2:    score2,
		Score3:    score3,
	})
	if err != nil {
		s.logger.Error("failed to create grade",
			"student_id", studentID,
			"subject_id", subjectID,
			"error", err.Error())
		return model.Grade{}, fmt.Errorf("failed to create grade: %w", err)
	}

	s.logger.Info("grade created", "grade_id", grade.ID, "student_id", studentID, "subject_id", subjectID)

	return grade, nil
}

func (s *Grades) Update(ctx context.Context, id int64, score1, score2, score3 float64) (model.Grade, error) {
	if err := validateScores(score1, score2, score3); err != nil {
		return model.Grade{}, err
	}

	grade, err := s.store.Update(ctx, model.Grade{ID: id, Score1: score1, Score2: score2, Score3: score3})
	if err != nil {
		return model.Grade{}, fmt.Errorf("failed to update grade: %w", err)
	}

	return grade, nil
}

func (s *Grades) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete grade: %w", err)
	}

	s.logger.Info("grade deleted", "grade_id", id)

	return nil
}

// ForStudent returns one row per grade the student has, joined with
// the subject name and the computed average.
func (s *Grades) ForStudent(ctx context.Context, studentID int64) ([]model.StudentGradeRow, error) {
	rows, err := s.store.ListForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list grades for student", "student_id", studentID, "error", err.Error())
		return nil, fmt.Errorf("failed to list grades for student: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.NewNotFound("no grades found for this student")
	}

	return rows, nil
}

// OverallAverage returns the mean of the student's per-grade averages.
func (s *Grades) OverallAverage(ctx context.Context, studentID int64) (float64, error) {
	avg, ok, err := s.store.OverallAverage(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to compute overall average", "student_id", studentID, "error", err.Error())
		return 0, fmt.Errorf("failed to compute overall average: %w", err)
	}
	if !ok {
		return 0, model.NewNotFound("no grades found for this student")
	}

	return avg, nil
}

// PendingSubjects returns the subjects the student has no grade row in.
func (s *Grades) PendingSubjects(ctx context.Context, studentID int64) ([]model.Subject, error) {
	subjects, err := s.store.PendingSubjects(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list pending subjects", "student_id", studentID, "error", err.Error())
		return nil, fmt.Errorf("failed to list pending subjects: %w", err)
	}
	if len(subjects) == 0 {
		return nil, model.NewNotFound("student has grades in every subject")
	}

	return subjects, nil
}

// ForSubject returns one row per grade in the subject, joined with the
// student name and the computed average.
func (s *Grades) ForSubject(ctx context.Context, subjectID int64) ([]model.SubjectGradeRow, error) {
	rows, err := s.store.ListForSubject(ctx, subjectID)
	if err != nil {
		s.logger.Error("failed to list grades for subject", "subject_id", subjectID, "error", err.Error())
		return nil, fmt.Errorf("failed to list grades for subject: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.NewNotFound("no students with grades in this subject")
	}

	return rows, nil
}

// PendingStudents returns the students with no grade row in the subject.
func (s *Grades) PendingStudents(ctx context.Context, subjectID int64) ([]model.Student, error) {
	students, err := s.store.PendingStudents(ctx, subjectID)
	if err != nil {
		s.logger.Error("failed to list pending students", "subject_id", subjectID, "error", err.Error())
		return nil, fmt.Errorf("failed to list pending students: %w", err)
	}
	if len(students) == 0 {
		return nil, model.NewNotFound("every student has grades in this subject")
	}

	return students, nil
}

// SubjectAverage returns the average of the grade row a student has in
// one subject.
func (s *Grades) SubjectAverage(ctx context.Context, studentID, subjectID int64) (float64, error) {
	avg, ok, err := s.store.SubjectAverage(ctx, studentID, subjectID)
	if err != nil {
		s.logger.Error("failed to compute subject average",
			"student_id", studentID,
			"subject_id", subjectID,
			"error", err.Error())
		return 0, fmt.Errorf("failed to compute subject average: %w", err)
	}
	if !ok {
		return 0, model.NewNotFound("no grades found to compute an average")
	}

	return avg, nil
}
