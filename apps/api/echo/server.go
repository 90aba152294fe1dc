package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Svc            *school.Service
		Reports        *report.Assembler
		EmailSvc       core.EmailService
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		ShutdownSignal() <-chan struct{}
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAccountAPI(v1, jwt, s.opts.Svc)
	registerStudentAPI(v1, jwt, s.opts.Svc)
	registerSubjectAPI(v1, jwt, s.opts.Svc)
	registerAbsenceAPI(v1, jwt, s.opts.Svc)
	registerFeeAPI(v1, jwt, s.opts.Svc)
	registerGradeAPI(v1, jwt, s.opts.Svc)
	registerReportAPI(v1, jwt, s.opts.Reports, s.opts.EmailSvc)
}

// signalShutdown asks main to gracefully shut the Server down.
func (s *server) signalShutdown() {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}
}

func (s *server) ShutdownSignal() <-chan struct{} { return s.shutdown }

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Bienvenue sur l'API "+core.Conf.AppName+" !")
}
