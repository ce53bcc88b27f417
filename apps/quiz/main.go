package main

import (
	"bufio"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
	inmemdb "github.com/trezcool/masomo-quiz/storage/inmem"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "QUIZ : ", log.LstdFlags)
	conf := core.NewConfig()

	// set up session store & service
	db, err := inmemdb.Open()
	errAndDie(err)
	validate, translator := core.NewValidator()
	quiz.InitValidators(validate, translator)
	svc := quiz.NewService(inmemdb.NewSessionRepository(db), core.NewStdLogger(logger), validate, translator)

	banks, err := quiz.Catalogue(conf.Quiz.BanksDir, conf.Quiz.TimeLimit)
	errAndDie(err)
	errAndDie(svc.RegisterBanks(banks...))

	// start CLI
	cli := commandLine{
		svc:         svc,
		validate:    validate,
		translator:  translator,
		quotes:      quiz.NewQuotes(nil),
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("error: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
