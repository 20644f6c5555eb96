package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdcastellanos/uni-registro-api/internal/middleware"
	"github.com/jdcastellanos/uni-registro-api/internal/service"
	"github.com/jdcastellanos/uni-registro-api/pkg/config"
	"github.com/jdcastellanos/uni-registro-api/pkg/logger"
	corsmiddleware "github.com/jdcastellanos/uni-registro-api/pkg/middleware/cors"
	reqidmiddleware "github.com/jdcastellanos/uni-registro-api/pkg/middleware/requestid"
)

// Router wires the handler layer. It is constructed once at process
// start with its dependencies injected.
type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	estudiantes *EstudianteHandler
	cursos      *CursoHandler
	matriculas  *MatriculaHandler
	metrics     *service.MetricsService
}

// NewRouter constructs the Router.
func NewRouter(cfg *config.Config, logger *zap.Logger, estudiantes *EstudianteHandler, cursos *CursoHandler, matriculas *MatriculaHandler, metrics *service.MetricsService) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		estudiantes: estudiantes,
		cursos:      cursos,
		matriculas:  matriculas,
		metrics:     metrics,
	}
}

// Setup builds the gin engine with middleware and the full route table.
func (rt *Router) Setup() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(rt.logger))
	r.Use(corsmiddleware.New(rt.cfg.CORS.AllowedOrigins))
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
		r.GET("/metrics", gin.WrapH(rt.metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(rt.cfg.APIPrefix)

	estudiantes := api.Group("/estudiantes")
	{
		estudiantes.POST("", rt.estudiantes.Create)
		estudiantes.GET("", rt.estudiantes.List)
		estudiantes.GET("/:cedula", rt.estudiantes.Get)
		estudiantes.PUT("/:cedula", rt.estudiantes.Update)
		estudiantes.DELETE("/:cedula", rt.estudiantes.Archive)
	}

	cursos := api.Group("/cursos")
	{
		cursos.POST("", rt.cursos.Create)
		cursos.GET("", rt.cursos.List)
		cursos.GET("/estudiantes/:cedula/cursos", rt.matriculas.CursosDeEstudiante)
		cursos.GET("/:id", rt.cursos.Get)
		cursos.PUT("/:id", rt.cursos.Update)
		cursos.DELETE("/:id", rt.cursos.Delete)
		cursos.GET("/:id/estudiantes", rt.matriculas.EstudiantesDeCurso)
		cursos.POST("/:id/estudiantes/:cedula", rt.matriculas.Enroll)
		cursos.DELETE("/:id/estudiantes/:cedula", rt.matriculas.Unenroll)
	}

	return r
}
