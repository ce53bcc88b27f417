package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
)

type StartRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (sr *StartRequest) Validate(validate *validator.Validate) error {
	sr.Name = core.CleanString(sr.Name)
	sr.Email = core.CleanString(sr.Email, true /* lower */)
	return validate.Struct(sr)
}

func (sr StartRequest) Student() quiz.Student {
	return quiz.Student{Name: sr.Name, Email: sr.Email}
}

type SelectRequest struct {
	Option *int `json:"option" validate:"required,min=0"`
}

func (sr SelectRequest) Validate(validate *validator.Validate) error { return validate.Struct(sr) }

type QuoteResponse struct {
	Quote string `json:"quote"`
}
