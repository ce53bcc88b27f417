package main

import (
	"context"
	"fmt"
	"log"
	"os"

	dig_container "github.com/trezcool/masomo-quiz/apps/api/di/dig"
	echoapi "github.com/trezcool/masomo-quiz/apps/api/echo"
	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
)

func main() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		svc *quiz.Service,
		server *echoapi.Server,
		shutdown chan os.Signal,
	) {
		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer logger.Info("Application stopped")

		for _, bank := range svc.Banks() {
			logger.Info(fmt.Sprintf("question bank %q: %d questions", bank.ID, bank.QuestionCount))
		}

		// =========================================================================
		// Start API Service

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("API listening on " + conf.Server.Address)
			serverErrors <- server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-serverErrors:
			if err != nil {
				logger.Fatal(fmt.Sprintf("server error: %v", err), err)
			}

		case sig := <-shutdown:
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Stop(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
