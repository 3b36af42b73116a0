package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvillagra/gradebook-server/internal/model"
)

var _ model.StudentStore = (*StudentRepository)(nil)

type StudentRepository struct {
	db *Connection
}

func NewStudentRepository(db *Connection) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT id, first_name, last_name FROM students ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return nil, translateError(err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (model.Student, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	var s model.Student
	query := `SELECT id, first_name, last_name FROM students WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, model.NewNotFound("student not found")
		}
		return model.Student{}, translateError(err)
	}

	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, student model.Student) (model.Student, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `INSERT INTO students (first_name, last_name)
			  VALUES ($1, $2)
			  RETURNING id, first_name, last_name`

	var saved model.Student
	err := r.db.QueryRow(ctx, query, student.FirstName, student.LastName).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName,
	)
	if err != nil {
		return model.Student{}, translateError(err)
	}

	return saved, nil
}

func (r *StudentRepository) Update(ctx context.Context, student model.Student) (model.Student, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `UPDATE students SET first_name = $1, last_name = $2 WHERE id = $3
			  RETURNING id, first_name, last_name`

	var saved model.Student
	err := r.db.QueryRow(ctx, query, student.FirstName, student.LastName, student.ID).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, model.NewNotFound("student not found")
		}
		return model.Student{}, translateError(err)
	}

	return saved, nil
}

// Delete removes the student's grade rows and the student itself in a
// single transaction, so a concurrent grade insert either fully
// precedes or fully follows it.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM grades WHERE student_id = $1`, id); err != nil {
		return translateError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFound("student not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(fmt.Errorf("failed to commit student delete: %w", err))
	}

	return nil
}
