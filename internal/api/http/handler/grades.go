package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// GradeService defines CRUD over grade rows.
type GradeService interface {
	List(ctx context.Context) ([]model.Grade, error)
	Get(ctx context.Context, id int64) (model.Grade, error)
	Create(ctx context.Context, studentID, subjectID int64, score1, score2, score3 float64) (model.Grade, error)
	Update(ctx context.Context, id int64, score1, score2, score3 float64) (model.Grade, error)
	Delete(ctx context.Context, id int64) error
	SubjectAverage(ctx context.Context, studentID, subjectID int64) (float64, error)
}

// Grades handles the /grades endpoints.
type Grades struct {
	service GradeService
	logger  *logger.Logger
}

func NewGrades(service GradeService, logger *logger.Logger) *Grades {
	return &Grades{service: service, logger: logger}
}

// Score fields are pointers so an omitted key is distinguishable from
// an explicit zero.
type createGradeRequest struct {
	StudentID int64    `json:"student_id"`
	SubjectID int64    `json:"subject_id"`
	Score1    *float64 `json:"score1"`
	Score2    *float64 `json:"score2"`
	Score3    *float64 `json:"score3"`
}

type updateGradeRequest struct {
	Score1 *float64 `json:"score1"`
	Score2 *float64 `json:"score2"`
	Score3 *float64 `json:"score3"`
}

func requireScores(scores ...*float64) error {
	for _, s := range scores {
		if s == nil {
			return model.NewInvalidInput("score1, score2 and score3 are required")
		}
	}
	return nil
}

func (h *Grades) List(c *fiber.Ctx) error {
	grades, err := h.service.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(grades)
}

func (h *Grades) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	grade, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(grade)
}

func (h *Grades) Create(c *fiber.Ctx) error {
	var req createGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	if err := requireScores(req.Score1, req.Score2, req.Score3); err != nil {
		return handleError(c, err)
	}

	grade, err := h.service.Create(c.UserContext(), req.StudentID, req.SubjectID, *req.Score1, *req.Score2, *req.Score3)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(grade)
}

func (h *Grades) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var req updateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	if err := requireScores(req.Score1, req.Score2, req.Score3); err != nil {
		return handleError(c, err)
	}

	grade, err := h.service.Update(c.UserContext(), id, *req.Score1, *req.Score2, *req.Score3)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(grade)
}

func (h *Grades) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "grade deleted"})
}

// Average returns the average of the grade row a student has in one
// subject.
func (h *Grades) Average(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return handleError(c, err)
	}
	subjectID, err := parseIDParam(c, "subjectId")
	if err != nil {
		return handleError(c, err)
	}

	avg, err := h.service.SubjectAverage(c.UserContext(), studentID, subjectID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"promedio": avg})
}
