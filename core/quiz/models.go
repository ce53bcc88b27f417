package quiz

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-quiz/core"
)

// Unanswered marks an answer slot (or the tentative selection) with no option chosen.
const Unanswered = -1

// PassMark is the minimum percentage needed to pass a quiz.
const PassMark = 60

var (
	// errors
	ErrEmptyBank       = errors.New("question bank has no questions")
	ErrBankNotFound    = errors.New("question bank not found")
	ErrBankExists      = errors.New("a question bank with this id already exists")
	ErrSessionNotFound = errors.New("quiz session not found")

	ErrNoSelection = core.NewValidationError(
		errors.New("select an option before submitting"),
		core.FieldError{Field: "option", Error: "select an option"},
	)

	// misuse (programming) errors
	ErrOptionOutOfRange = core.NewMisuseError("option index out of range")
	ErrSessionCompleted = core.NewMisuseError("quiz session already completed")
	ErrNotCompleted     = core.NewMisuseError("quiz session not completed yet")
)

// Question is one multiple-choice entry of a Bank.
// The index of an option is its identity.
type Question struct {
	Text          string   `json:"text" yaml:"text" validate:"required"`
	Options       []string `json:"options" yaml:"options" validate:"len=4,unique,dive,required"`
	CorrectOption int      `json:"correct_option" yaml:"correct_option"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
}

// OptionText returns the text of option i, or "" if i is out of range.
func (q Question) OptionText(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}

// Bank is an ordered, immutable set of questions driving quiz sessions.
// Sessions share it read-only; it must not be modified once registered.
type Bank struct {
	ID        string        `json:"id" yaml:"id" validate:"required,alphanum_"`
	Title     string        `json:"title" yaml:"title" validate:"required"`
	Subject   string        `json:"subject" yaml:"subject"`
	TimeLimit time.Duration `json:"time_limit" yaml:"-"`
	Questions []Question    `json:"questions" yaml:"questions"`
}

// BankInfo is the public summary of a Bank; it never exposes answers.
type BankInfo struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Subject       string  `json:"subject"`
	QuestionCount int     `json:"question_count"`
	TimeLimit     float64 `json:"time_limit"` // seconds
}

func (b *Bank) Info() BankInfo {
	return BankInfo{
		ID:            b.ID,
		Title:         b.Title,
		Subject:       b.Subject,
		QuestionCount: len(b.Questions),
		TimeLimit:     b.TimeLimit.Seconds(),
	}
}

// Student identifies who is taking a quiz. It is informative only.
type Student struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// Feedback is shown for a question once its answer has been submitted.
type Feedback struct {
	ChosenOption  int    `json:"chosen_option"`
	CorrectOption int    `json:"correct_option"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// State is a read-only snapshot of a Session for presentation adapters.
type State struct {
	CurrentIndex   int       `json:"current_index"`
	SelectedOption *int      `json:"selected_option"`
	Revealed       bool      `json:"revealed"`
	Revisiting     bool      `json:"revisiting"`
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	Answers        []int     `json:"answers"`
	Completed      bool      `json:"completed"`
	Feedback       *Feedback `json:"feedback,omitempty"`
}

// PublicQuestion is a Question without its answer key.
type PublicQuestion struct {
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}
