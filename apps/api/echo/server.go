package echoapi

import (
	"context"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
)

type (
	Deps struct {
		QuizSvc    *quiz.Service
		Quotes     *quiz.Quotes
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		conf     *core.Config
		logger   core.Logger
		deps     *Deps
		app      *echo.Echo
		shutdown chan os.Signal
		stop     chan struct{}
		stopOnce sync.Once
	}
)

func NewServer(conf *core.Config, logger core.Logger, shutdown chan os.Signal, deps *Deps) *Server {
	s := &Server{
		conf:     conf,
		logger:   logger,
		deps:     deps,
		app:      echo.New(),
		shutdown: shutdown,
		stop:     make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = s.conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerQuizAPI(v1, s.deps.QuizSvc, s.deps.Quotes, s.deps.Validate)
}

// Start serves the API until Stop is called; idle sessions are purged in the background.
func (s *Server) Start() error {
	go s.purgeIdleSessions(s.conf.Quiz.SessionTTL)
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- syscall.SIGTERM
	}
}

func (s *Server) purgeIdleSessions(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(purgeInterval(ttl))
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			n, err := s.deps.QuizSvc.PurgeIdle(ttl)
			if err != nil {
				s.logger.Error("purging idle sessions", err)
				continue
			}
			if n > 0 {
				s.logger.Info("purged idle sessions", map[string]interface{}{"count": n})
			}
		}
	}
}

// purgeInterval checks for idle sessions twice per ttl.
func purgeInterval(ttl time.Duration) time.Duration {
	if interval := ttl / 2; interval > 0 {
		return interval
	}
	return ttl
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" Quiz API!")
}
