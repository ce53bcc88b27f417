package dig_container

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo-quiz/apps/api/echo"
	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
	logsvc "github.com/trezcool/masomo-quiz/services/logger"
	inmemdb "github.com/trezcool/masomo-quiz/storage/inmem"
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	if conf.Debug || conf.TestMode {
		return core.NewStdLogger(stdLogger)
	}
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(true)
	return logger
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	quiz.InitValidators(validate, translator)
	return validate
}

func newSessionRepository() (quiz.Repository, error) {
	db, err := inmemdb.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening session store")
	}
	return inmemdb.NewSessionRepository(db), nil
}

func newQuizService(
	conf *core.Config,
	logger core.Logger,
	repo quiz.Repository,
	validate *validator.Validate,
	translator ut.Translator,
) (*quiz.Service, error) {
	banks, err := quiz.Catalogue(conf.Quiz.BanksDir, conf.Quiz.TimeLimit)
	if err != nil {
		return nil, errors.Wrap(err, "loading question banks")
	}
	svc := quiz.NewService(repo, logger, validate, translator)
	if err := svc.RegisterBanks(banks...); err != nil {
		return nil, err
	}
	return svc, nil
}

func newQuotes() *quiz.Quotes {
	return quiz.NewQuotes(nil)
}

func newShutdownChannel() chan os.Signal {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	return shutdown
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	shutdown chan os.Signal,
	svc *quiz.Service,
	quotes *quiz.Quotes,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(conf, logger, shutdown, &echoapi.Deps{
		QuizSvc:    svc,
		Quotes:     quotes,
		Validate:   validate,
		Translator: translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(newSessionRepository))
	must(c.Provide(newQuizService))
	must(c.Provide(newQuotes))
	must(c.Provide(newShutdownChannel))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
