package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/model"
)

// SubjectService defines CRUD over the subject catalog.
type SubjectService interface {
	List(ctx context.Context) ([]model.Subject, error)
	Get(ctx context.Context, id int64) (model.Subject, error)
	Create(ctx context.Context, name string) (model.Subject, error)
	Update(ctx context.Context, id int64, name string) (model.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectAggregates defines the subject-side aggregate queries.
type SubjectAggregates interface {
	ForSubject(ctx context.Context, subjectID int64) ([]model.SubjectGradeRow, error)
	PendingStudents(ctx context.Context, subjectID int64) ([]model.Student, error)
}

// Subjects handles the /subjects endpoints.
type Subjects struct {
	service    SubjectService
	aggregates SubjectAggregates
	logger     *logger.Logger
}

func NewSubjects(service SubjectService, aggregates SubjectAggregates, logger *logger.Logger) *Subjects {
	return &Subjects{service: service, aggregates: aggregates, logger: logger}
}

type subjectRequest struct {
	Name string `json:"name"`
}

func (h *Subjects) List(c *fiber.Ctx) error {
	subjects, err := h.service.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(subjects)
}

func (h *Subjects) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	subject, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(subject)
}

func (h *Subjects) Create(c *fiber.Ctx) error {
	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	subject, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func (h *Subjects) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, model.NewInvalidInput("invalid request body"))
	}

	subject, err := h.service.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(subject)
}

func (h *Subjects) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "subject and its grades deleted"})
}

// Students returns one row per grade in the subject, with the student
// name and computed average.
func (h *Subjects) Students(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	rows, err := h.aggregates.ForSubject(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(rows)
}

// PendingStudents returns the students with no grades in the subject.
func (h *Subjects) PendingStudents(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	students, err := h.aggregates.PendingStudents(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(students)
}
