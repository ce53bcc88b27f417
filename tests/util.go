package testutil

import (
	"io/ioutil"
	"log"
	"strconv"
	"testing"
	"time"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
	inmemdb "github.com/trezcool/masomo-quiz/storage/inmem"
)

// NewService returns a quiz service backed by a fresh in-memory store, with banks registered.
func NewService(t *testing.T, banks ...*quiz.Bank) (*quiz.Service, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	validate, translator := core.NewValidator()
	quiz.InitValidators(validate, translator)
	logger := core.NewStdLogger(log.New(ioutil.Discard, "", 0))

	svc := quiz.NewService(inmemdb.NewSessionRepository(db), logger, validate, translator)
	if err := svc.RegisterBanks(banks...); err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc, db
}

// NewBank builds a bank whose i-th question is answered correctly by correct[i].
func NewBank(id string, timeLimit time.Duration, correct ...int) *quiz.Bank {
	bank := &quiz.Bank{
		ID:        id,
		Title:     "Bank " + id,
		Subject:   "Testing",
		TimeLimit: timeLimit,
	}
	for i, c := range correct {
		n := strconv.Itoa(i + 1)
		bank.Questions = append(bank.Questions, quiz.Question{
			Text:          "Question " + n,
			Options:       []string{"A" + n, "B" + n, "C" + n, "D" + n},
			CorrectOption: c,
			Explanation:   "Because " + n,
		})
	}
	return bank
}
