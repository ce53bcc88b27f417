package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-quiz/core/quiz"
)

var (
	errHelp   = errors.New("help provided")
	errIssues = errors.New("question banks have integrity issues")
)

type commandLine struct {
	svc         *quiz.Service
	validate    *validator.Validate
	translator  ut.Translator
	quotes      *quiz.Quotes
	in          *bufio.Reader
	out         io.Writer
	interactive bool // prompt for input (stdin is a terminal)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  banks                          - list the question banks")
	fmt.Fprintln(cli.out, "  check [-bank ID]               - report data-integrity issues of question banks")
	fmt.Fprintln(cli.out, "  play -bank ID [-name STUDENT]  - take a quiz")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkCmd := flag.NewFlagSet("check", flag.ContinueOnError)
	checkCmd.SetOutput(cli.out)
	checkBank := checkCmd.String("bank", "", "The bank to check. All banks are checked if empty.")

	playCmd := flag.NewFlagSet("play", flag.ContinueOnError)
	playCmd.SetOutput(cli.out)
	playBank := playCmd.String("bank", "", "The bank to play.")
	playName := playCmd.String("name", "", "The student's name.")

	switch args[1] {
	case "banks":
		cli.listBanks()
		return nil
	case "check":
		if err := checkCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.checkBanks(*checkBank)
	case "play":
		if err := playCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *playBank == "" {
			playCmd.Usage()
			return errHelp
		}
		return cli.play(*playBank, quiz.Student{Name: *playName})
	default:
		cli.printUsage()
		return errHelp
	}
}
