package model

import "context"

// StudentStore defines persistence operations for students. Delete
// removes the student's grade rows in the same transaction.
type StudentStore interface {
	List(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id int64) (Student, error)
	Create(ctx context.Context, student Student) (Student, error)
	Update(ctx context.Context, student Student) (Student, error)
	Delete(ctx context.Context, id int64) error
}

// Student represents an enrolled student.
type Student struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
