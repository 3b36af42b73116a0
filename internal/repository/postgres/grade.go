package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mvillagra/gradebook-server/internal/model"
)

var _ model.GradeStore = (*GradeRepository)(nil)

type GradeRepository struct {
	db *Connection
}

func NewGradeRepository(db *Connection) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

func (r *GradeRepository) List(ctx context.Context) ([]model.Grade, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT id, student_id, subject_id, score1, score2, score3 FROM grades ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	grades := []model.Grade{}
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.SubjectID, &g.Score1, &g.Score2, &g.Score3); err != nil {
			return nil, translateError(err)
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return grades, nil
}

func (r *GradeRepository) GetByID(ctx context.Context, id int64) (model.Grade, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	var g model.Grade
	query := `SELECT id, student_id, subject_id, score1, score2, score3 FROM grades WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&g.ID, &g.StudentID, &g.SubjectID, &g.Score1, &g.Score2, &g.Score3)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Grade{}, model.NewNotFound("grade not found")
		}
		return model.Grade{}, translateError(err)
	}

	return g, nil
}

// Create relies on the store's foreign keys to reject unknown student
// or subject ids; the violation comes back as an InvalidInput error.
func (r *GradeRepository) Create(ctx context.Context, grade model.Grade) (model.Grade, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `INSERT INTO grades (student_id, subject_id, score1, score2, score3)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, student_id, subject_id, score1, score2, score3`

	var saved model.Grade
	err := r.db.QueryRow(ctx, query,
		grade.StudentID, grade.SubjectID, grade.Score1, grade.Score2, grade.Score3,
	).Scan(&saved.ID, &saved.StudentID, &saved.SubjectID, &saved.Score1, &saved.Score2, &saved.Score3)
	if err != nil {
		return model.Grade{}, translateError(err)
	}

	return saved, nil
}

func (r *GradeRepository) Update(ctx context.Context, grade model.Grade) (model.Grade, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `UPDATE grades SET score1 = $1, score2 = $2, score3 = $3 WHERE id = $4
			  RETURNING id, student_id, subject_id, score1, score2, score3`

	var saved model.Grade
	err := r.db.QueryRow(ctx, query, grade.Score1, grade.Score2, grade.Score3, grade.ID).Scan(
		&saved.ID, &saved.StudentID, &saved.SubjectID, &saved.Score1, &saved.Score2, &saved.Score3,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Grade{}, model.NewNotFound("grade not found")
		}
		return model.Grade{}, translateError(err)
	}

	return saved, nil
}

func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFound("grade not found")
	}

	return nil
}

func (r *GradeRepository) ListForStudent(ctx context.Context, studentID int64) ([]model.StudentGradeRow, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT st.first_name || ' ' || st.last_name,
					 su.name,
					 g.score1, g.score2, g.score3,
					 ROUND((g.score1 + g.score2 + g.score3) / 3.0, 2)
			  FROM grades g
			  INNER JOIN students st ON g.student_id = st.id
			  INNER JOIN subjects su ON g.subject_id = su.id
			  WHERE g.student_id = $1
			  ORDER BY g.id`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []model.StudentGradeRow{}
	for rows.Next() {
		var row model.StudentGradeRow
		if err := rows.Scan(&row.Student, &row.Subject, &row.Score1, &row.Score2, &row.Score3, &row.Average); err != nil {
			return nil, translateError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return result, nil
}

// OverallAverage returns the mean of the student's per-grade averages.
// The boolean is false when the student has no grade rows.
func (r *GradeRepository) OverallAverage(ctx context.Context, studentID int64) (float64, bool, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT ROUND(AVG((score1 + score2 + score3) / 3.0), 2)
			  FROM grades WHERE student_id = $1`

	var avg *float64
	if err := r.db.QueryRow(ctx, query, studentID).Scan(&avg); err != nil {
		return 0, false, translateError(err)
	}
	if avg == nil {
		return 0, false, nil
	}

	return *avg, true, nil
}

func (r *GradeRepository) PendingSubjects(ctx context.Context, studentID int64) ([]model.Subject, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT su.id, su.name
			  FROM subjects su
			  LEFT JOIN grades g ON su.id = g.subject_id AND g.student_id = $1
			  WHERE g.id IS NULL
			  ORDER BY su.id`

	rows, err := r.db.Query(ctx, query, studentID)
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

func (r *GradeRepository) ListForSubject(ctx context.Context, subjectID int64) ([]model.SubjectGradeRow, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT st.first_name || ' ' || st.last_name,
					 g.score1, g.score2, g.score3,
					 ROUND((g.score1 + g.score2 + g.score3) / 3.0, 2)
			  FROM grades g
			  INNER JOIN students st ON g.student_id = st.id
			  WHERE g.subject_id = $1
			  ORDER BY g.id`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []model.SubjectGradeRow{}
	for rows.Next() {
		var row model.SubjectGradeRow
		if err := rows.Scan(&row.Student, &row.Score1, &row.Score2, &row.Score3, &row.Average); err != nil {
			return nil, translateError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return result, nil
}

func (r *GradeRepository) PendingStudents(ctx context.Context, subjectID int64) ([]model.Student, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT st.id, st.first_name, st.last_name
			  FROM students st
			  LEFT JOIN grades g ON st.id = g.student_id AND g.subject_id = $1
			  WHERE g.id IS NULL
			  ORDER BY st.id`

	rows, err := r.db.Query(ctx, query, subjectID)
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

// SubjectAverage returns the average of the single grade row a student
// has in a subject. The boolean is false when no such row exists.
func (r *GradeRepository) SubjectAverage(ctx context.Context, studentID, subjectID int64) (float64, bool, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `SELECT ROUND((score1 + score2 + score3) / 3.0, 2)
			  FROM grades WHERE student_id = $1 AND subject_id = $2`

	var avg float64
	err := r.db.QueryRow(ctx, query, studentID, subjectID).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, translateError(err)
	}

	return avg, true, nil
}
