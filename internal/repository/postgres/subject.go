package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvillagra/gradebook-server/internal/model"
)

var _ model.SubjectStore = (*SubjectRepository)(nil)

type SubjectRepository struct {
	db *Connection
}

func NewSubjectRepository(db *Connection) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT id, name FROM subjects ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, translateError(err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return subjects, nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (model.Subject, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	var s model.Subject
	query := `SELECT id, name FROM subjects WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Subject{}, model.NewNotFound("subject not found")
		}
		return model.Subject{}, translateError(err)
	}

	return s, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject model.Subject) (model.Subject, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `INSERT INTO subjects (name) VALUES ($1) RETURNING id, name`

	var saved model.Subject
	err := r.db.QueryRow(ctx, query, subject.Name).Scan(&saved.ID, &saved.Name)
	if err != nil {
		return model.Subject{}, translateError(err)
	}

	return saved, nil
}

func (r *SubjectRepository) Update(ctx context.Context, subject model.Subject) (model.Subject, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `UPDATE subjects SET name = $1 WHERE id = $2 RETURNING id, name`

	var saved model.Subject
	err := r.db.QueryRow(ctx, query, subject.Name, subject.ID).Scan(&saved.ID, &saved.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Subject{}, model.NewNotFound("subject not found")
		}
		return model.Subject{}, translateError(err)
	}

	return saved, nil
}

// Delete removes the subject's grade rows and the subject itself in a
// single transaction.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM grades WHERE subject_id = $1`, id); err != nil {
		return translateError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFound("subject not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(fmt.Errorf("failed to commit subject delete: %w", err))
	}

	return nil
}
