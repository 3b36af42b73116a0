package model

import "context"

// GradeStore defines persistence and aggregate queries for grades.
// Aggregate methods return slices; "no rows" handling belongs to the
// service layer.
type GradeStore interface {
	List(ctx context.Context) ([]Grade, error)
	GetByID(ctx context.Context, id int64) (Grade, error)
	Create(ctx context.Context, grade Grade) (Grade, error)
	Update(ctx context.Context, grade Grade) (Grade, error)
	Delete(ctx context.Context, id int64) error

	ListForStudent(ctx context.Context, studentID int64) ([]StudentGradeRow, error)
	OverallAverage(ctx context.Context, studentID int64) (float64, bool, error)
	PendingSubjects(ctx context.Context, studentID int64) ([]Subject, error)
	ListForSubject(ctx context.Context, subjectID int64) ([]SubjectGradeRow, error)
	PendingStudents(ctx context.Context, subjectID int64) ([]Student, error)
	SubjectAverage(ctx context.Context, studentID, subjectID int64) (float64, bool, error)
}

// Grade holds the three scores a student earned in one subject.
type Grade struct {
	ID        int64   `json:"id"`
	StudentID int64   `json:"student_id"`
	SubjectID int64   `json:"subject_id"`
	Score1    float64 `json:"score1"`
	Score2    float64 `json:"score2"`
	Score3    float64 `json:"score3"`
}

// StudentGradeRow is one grade of a student joined with its subject,
// with the per-grade average computed on read.
type StudentGradeRow struct {
	Student string  `json:"student"`
	Subject string  `json:"subject"`
	Score1  float64 `json:"score1"`
	Score2  float64 `json:"score2"`
	Score3  float64 `json:"score3"`
	Average float64 `json:"promedio"`
}

// SubjectGradeRow is one grade within a subject joined with its student.
type SubjectGradeRow struct {
	Student string  `json:"student"`
	Score1  float64 `json:"score1"`
	Score2  float64 `json:"score2"`
	Score3  float64 `json:"score3"`
	Average float64 `json:"promedio"`
}
