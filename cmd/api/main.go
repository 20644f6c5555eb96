package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jdcastellanos/uni-registro-api/internal/handler"
	"github.com/jdcastellanos/uni-registro-api/internal/repository"
	"github.com/jdcastellanos/uni-registro-api/internal/service"
	"github.com/jdcastellanos/uni-registro-api/pkg/config"
	"github.com/jdcastellanos/uni-registro-api/pkg/database"
	"github.com/jdcastellanos/uni-registro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.InitSchema(db); err != nil {
		logr.Sugar().Fatalw("failed to init schema", "error", err)
	}

	validate := validator.New()

	estudianteRepo := repository.NewEstudianteRepository(db)
	cursoRepo := repository.NewCursoRepository(db)
	matriculaRepo := repository.NewMatriculaRepository(db)

	matriculaSvc := service.NewMatriculaService(matriculaRepo, estudianteRepo, cursoRepo, cfg.Enrollment.AllowArchived, logr)
	estudianteSvc := service.NewEstudianteService(estudianteRepo, matriculaSvc, validate, logr)
	cursoSvc := service.NewCursoService(cursoRepo, matriculaSvc, validate, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	router := handler.NewRouter(
		cfg,
		logr,
		handler.NewEstudianteHandler(estudianteSvc, matriculaSvc),
		handler.NewCursoHandler(cursoSvc, matriculaSvc),
		handler.NewMatriculaHandler(matriculaSvc),
		metricsSvc,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "db", cfg.Database.Path)
	if err := router.Setup().Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
