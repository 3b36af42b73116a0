package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/api/http/handler"
	"github.com/mvillagra/gradebook-server/internal/api/http/middleware"
	"github.com/mvillagra/gradebook-server/internal/logger"
)

// Router wires handlers and middleware into a Fiber application.
type Router struct {
	authService    handler.AuthService
	studentService handler.StudentService
	subjectService handler.SubjectService
	gradeService   handler.GradeService
	aggregates     aggregateService
	tokenParser    middleware.TokenParser
	logger         *logger.Logger
}

// aggregateService bundles the aggregate queries both entity handlers
// need. The grades service satisfies it.
type aggregateService interface {
	handler.StudentAggregates
	handler.SubjectAggregates
}

// New creates a Router over the given services.
func New(
	authService handler.AuthService,
	studentService handler.StudentService,
	subjectService handler.SubjectService,
	gradeService handler.GradeService,
	aggregates aggregateService,
	tokenParser middleware.TokenParser,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		studentService: studentService,
		subjectService: subjectService,
		gradeService:   gradeService,
		aggregates:     aggregates,
		tokenParser:    tokenParser,
		logger:         logger,
	}
}

// Register builds the Fiber application with all routes and middleware.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "gradebook-server",
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenParser, r.logger)

	app.Use(logging.Handle)

	api := app.Group("/api")

	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHandler := handler.NewAuth(r.authService, r.logger)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	studentsHandler := handler.NewStudents(r.studentService, r.aggregates, r.logger)
	students := api.Group("/students", authenticate.Handle)
	students.Get("/", studentsHandler.List)
	students.Post("/", studentsHandler.Create)
	students.Get("/:id", studentsHandler.Get)
	students.Put("/:id", studentsHandler.Update)
	students.Delete("/:id", studentsHandler.Delete)
	students.Get("/:id/grades", studentsHandler.Grades)
	students.Get("/:id/average", studentsHandler.Average)
	students.Get("/:id/pending-subjects", studentsHandler.PendingSubjects)

	subjectsHandler := handler.NewSubjects(r.subjectService, r.aggregates, r.logger)
	subjects := api.Group("/subjects", authenticate.Handle)
	subjects.Get("/", subjectsHandler.List)
	subjects.Post("/", subjectsHandler.Create)
	subjects.Get("/:id", subjectsHandler.Get)
	subjects.Put("/:id", subjectsHandler.Update)
	subjects.Delete("/:id", subjectsHandler.Delete)
	subjects.Get("/:id/students", subjectsHandler.Students)
	subjects.Get("/:id/pending-students", subjectsHandler.PendingStudents)

	gradesHandler := handler.NewGrades(r.gradeService, r.logger)
	grades := api.Group("/grades", authenticate.Handle)
	grades.Get("/", gradesHandler.List)
	grades.Post("/", gradesHandler.Create)
	grades.Get("/:id", gradesHandler.Get)
	grades.Put("/:id", gradesHandler.Update)
	grades.Delete("/:id", gradesHandler.Delete)
	grades.Get("/:studentId/:subjectId/average", gradesHandler.Average)

	return app
}
