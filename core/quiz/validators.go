package quiz

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-quiz/core"
)

var (
	correctOptionTag  = "correctoption"
	correctOptionText = "correct option must point to one of the options"
)

// InitValidators registers the quiz validations on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(questionStructValidation, Question{})
	core.RegisterCustomTranslation(validate, translator, correctOptionTag, correctOptionText)
}

// questionStructValidation checks that CorrectOption is within the options' bounds.
func questionStructValidation(sl validator.StructLevel) {
	q, ok := sl.Current().Interface().(Question)
	if !ok {
		return
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		sl.ReportError(q.CorrectOption, "correct_option", "CorrectOption", correctOptionTag, "")
	}
}

// Issue is a data-integrity problem found in a Bank.
type Issue struct {
	Question int    `json:"question"` // 1-based; 0 for the bank itself
	Field    string `json:"field"`
	Error    string `json:"error"`
}

func (iss Issue) String() string {
	if iss.Question == 0 {
		return fmt.Sprintf("bank: %s: %s", iss.Field, iss.Error)
	}
	return fmt.Sprintf("question %d: %s: %s", iss.Question, iss.Field, iss.Error)
}

// Check reports the integrity issues of b.
// Issues never prevent a bank from being played: affected questions simply cannot be scored.
func (b *Bank) Check(validate *validator.Validate, translator ut.Translator) []Issue {
	var issues []Issue
	collect := func(number int, err error) {
		if err == nil {
			return
		}
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			issues = append(issues, Issue{Question: number, Error: err.Error()})
			return
		}
		for _, fe := range vErrs {
			issues = append(issues, Issue{Question: number, Field: fe.Field(), Error: fe.Translate(translator)})
		}
	}

	collect(0, validate.Struct(b))
	if len(b.Questions) == 0 {
		issues = append(issues, Issue{Field: "questions", Error: ErrEmptyBank.Error()})
	}
	for i, q := range b.Questions {
		collect(i+1, validate.Struct(q))
	}
	return issues
}
