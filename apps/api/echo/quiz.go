package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-quiz/core/quiz"
)

type quizApi struct {
	svc      *quiz.Service
	quotes   *quiz.Quotes
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, svc *quiz.Service, quotes *quiz.Quotes, validate *validator.Validate) {
	api := quizApi{
		svc:      svc,
		quotes:   quotes,
		validate: validate,
	}

	bg := g.Group("/banks")
	bg.GET("", api.queryBanks)
	bg.GET("/:bank", api.retrieveBank)
	bg.POST("/:bank/sessions", api.start)

	// session endpoints
	sg := g.Group("/sessions/:id", sessionIDMiddleware)
	sg.GET("", api.retrieve)
	sg.DELETE("", api.abandon)
	sg.POST("/select", api.selectOption)
	sg.POST("/submit", api.transition("submitting answer", api.svc.Submit))
	sg.POST("/advance", api.transition("advancing", api.svc.Advance))
	sg.POST("/previous", api.transition("going to previous question", api.svc.Previous))
	sg.POST("/restart", api.transition("restarting", api.svc.Restart))
	sg.POST("/finish", api.transition("finishing", api.svc.Finish))
	sg.GET("/review", api.review)

	g.GET("/quotes/random", api.randomQuote)
}

// Handlers

func (api *quizApi) queryBanks(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Banks())
}

func (api *quizApi) retrieveBank(ctx echo.Context) error {
	bank, err := api.svc.Bank(ctx.Param("bank"))
	if err != nil {
		return errors.Wrap(err, "retrieving bank")
	}
	return ctx.JSON(http.StatusOK, bank.Info())
}

func (api *quizApi) start(ctx echo.Context) error {
	var data StartRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StartRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	view, err := api.svc.Start(ctx.Param("bank"), data.Student())
	if err != nil {
		return errors.Wrap(err, "starting session")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	view, err := api.svc.Get(sessionID(ctx))
	if err != nil {
		return errors.Wrap(err, "retrieving session")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *quizApi) selectOption(ctx echo.Context) error {
	var data SelectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	view, err := api.svc.Select(sessionID(ctx), *data.Option)
	if err != nil {
		return errors.Wrap(err, "selecting option")
	}
	return ctx.JSON(http.StatusOK, view)
}

// transition serves the session transitions that take no input.
func (api *quizApi) transition(action string, fn func(id string) (quiz.View, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		view, err := fn(sessionID(ctx))
		if err != nil {
			return errors.Wrap(err, action)
		}
		return ctx.JSON(http.StatusOK, view)
	}
}

func (api *quizApi) review(ctx echo.Context) error {
	sum, err := api.svc.Review(sessionID(ctx))
	if err != nil {
		return errors.Wrap(err, "reviewing session")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *quizApi) abandon(ctx echo.Context) error {
	if err := api.svc.Abandon(sessionID(ctx)); err != nil {
		return errors.Wrap(err, "abandoning session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *quizApi) randomQuote(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, QuoteResponse{Quote: api.quotes.Pick()})
}

func sessionID(ctx echo.Context) string {
	return strings.ToLower(ctx.Param("id"))
}
