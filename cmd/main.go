package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mvillagra/gradebook-server/internal/api/http/router"
	"github.com/mvillagra/gradebook-server/internal/config"
	"github.com/mvillagra/gradebook-server/internal/hasher"
	"github.com/mvillagra/gradebook-server/internal/logger"
	"github.com/mvillagra/gradebook-server/internal/repository/postgres"
	"github.com/mvillagra/gradebook-server/internal/server"
	"github.com/mvillagra/gradebook-server/internal/service"
	"github.com/mvillagra/gradebook-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Best effort; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	subjectRepo := postgres.NewSubjectRepository(db)
	gradeRepo := postgres.NewGradeRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	passwordHasher := hasher.NewBcrypt(cfg.Password.BcryptCost)

	authService := service.NewAuth(userRepo, passwordHasher, tokenManager, logger)
	studentService := service.NewStudents(studentRepo, logger)
	subjectService := service.NewSubjects(subjectRepo, logger)
	gradeService := service.NewGrades(gradeRepo, logger)

	r := router.New(authService, studentService, subjectService, gradeService, gradeService, tokenManager, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
