package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// StudentService defines CRUD over the student roster.
type StudentService interface {
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int64) (model.Student, error)
	Create(ctx context.Context, firstName, lastName string) (model.Student, error)
	Update(ctx context.Context, id int64, firstName, lastName string) (model.Student, error)
	Delete(ctx context.Context, id int64) error
}

// StudentAggregates defines the student-side aggregate queries.
type StudentAggregates interface {
	ForStudent(ctx context.Context, studentID int64) ([]model.StudentGradeRow, error)
	OverallAverage(ctx context.Context, studentID int64) (float64, error)
	PendingSubjects(ctx context.Context, studentID int64) ([]model.Subject, error)
}

// Students handles the /students endpoints.
type Students struct {
	service    StudentService
	aggregates StudentAggregates
	logger     *logger.Logger
}

func NewStudents(service StudentService, aggregates StudentAggregates, logger *logger.Logger) *Students {
	return &Students{service: service, aggregates: aggregates, logger: logger}
}

type studentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *Students) List(c *fiber.Ctx) error {
	students, err := h.service.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(students)
}

func (h *Students) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	student, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(student)
}

func (h *Students) Create(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	student, err := h.service.Create(c.UserContext(), req.FirstName, req.LastName)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *Students) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	student, err := h.service.Update(c.UserContext(), id, req.FirstName, req.LastName)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(student)
}

func (h *Students) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "student and their grades deleted"})
}

// Grades returns one row per grade the student has, with the subject
// name and computed average.
func (h *Students) Grades(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	rows, err := h.aggregates.ForStudent(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(rows)
}

// Average returns the student's overall average across subjects.
func (h *Students) Average(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	avg, err := h.aggregates.OverallAverage(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"promedio_general": avg})
}

// PendingSubjects returns the subjects the student has no grades in.
func (h *Students) PendingSubjects(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	subjects, err := h.aggregates.PendingSubjects(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(subjects)
}
