package model

import "context"

// SubjectStore defines persistence operations for subjects. Delete
// removes the subject's grade rows in the same transaction.
type SubjectStore interface {
	List(ctx context.Context) ([]Subject, error)
	GetByID(ctx context.Context, id int64) (Subject, error)
	Create(ctx context.Context, subject Subject) (Subject, error)
	Update(ctx context.Context, subject Subject) (Subject, error)
	Delete(ctx context.Context, id int64) error
}

// Subject represents a taught subject.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
