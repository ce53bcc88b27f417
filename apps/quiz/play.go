package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
)

const helpLine = "Enter a letter to select, s: submit, n: next, p: previous, f: finish, q: quit"

// play runs an interactive quiz on bankID until it is completed and not retaken, or abandoned.
func (cli *commandLine) play(bankID string, student quiz.Student) error {
	view, err := cli.svc.Start(bankID, student)
	if err != nil {
		return err
	}
	id := view.ID
	defer cli.svc.Abandon(id) //nolint:errcheck

	for {
		for !view.State.Completed {
			cli.printView(view)
			line, err := cli.readLine("> ")
			if err != nil {
				if err == io.EOF {
					fmt.Fprintln(cli.out, "\nQuiz abandoned.")
					return nil
				}
				return err
			}

			var next quiz.View
			switch cmd := strings.ToLower(line); {
			case cmd == "q":
				fmt.Fprintln(cli.out, "Quiz abandoned.")
				return nil
			case cmd == "s":
				next, err = cli.svc.Submit(id)
			case cmd == "n":
				next, err = cli.svc.Advance(id)
			case cmd == "p":
				next, err = cli.svc.Previous(id)
			case cmd == "f":
				next, err = cli.svc.Finish(id)
			case len(cmd) == 1 && cmd[0] >= 'a' && cmd[0] <= 'z':
				next, err = cli.svc.Select(id, int(cmd[0]-'a'))
			default:
				fmt.Fprintln(cli.out, helpLine)
				continue
			}

			switch {
			case err == nil:
				view = next
			case errors.Cause(err) == quiz.ErrNoSelection:
				fmt.Fprintln(cli.out, "Please select an option first.")
			case errors.Cause(err) == quiz.ErrOptionOutOfRange:
				fmt.Fprintf(cli.out, "Invalid input. Please enter a letter A-%c.\n", 'A'+len(view.Question.Options)-1)
			default:
				return err
			}
		}

		sum, err := cli.svc.Review(id)
		if err != nil {
			return err
		}
		cli.printReview(sum)

		line, err := cli.readLine("Enter r to retake the quiz, anything else to quit: ")
		if err != nil || strings.ToLower(line) != "r" {
			return nil
		}
		if view, err = cli.svc.Restart(id); err != nil {
			return err
		}
	}
}

func (cli *commandLine) readLine(prompt string) (string, error) {
	if cli.interactive {
		fmt.Fprint(cli.out, prompt)
	}
	line, err := cli.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return core.CleanString(line), nil
}

func (cli *commandLine) printView(view quiz.View) {
	st := view.State
	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s - Question %d of %d", view.Bank.Title, view.Question.Number, st.Total)
	if view.TimeRemaining > 0 {
		fmt.Fprintf(cli.out, "  [%s]", formatTime(int(view.TimeRemaining)))
	}
	fmt.Fprintln(cli.out)
	if st.Revisiting {
		fmt.Fprintln(cli.out, "(reviewing an answered question)")
	}
	fmt.Fprintf(cli.out, "\nQ%d: %s\n\n", view.Question.Number, view.Question.Text)

	for i, option := range view.Question.Options {
		mark := " "
		switch {
		case st.Feedback != nil && i == st.Feedback.CorrectOption:
			mark = "✓"
		case st.Feedback != nil && i == st.Feedback.ChosenOption:
			mark = "✗"
		case st.Feedback == nil && st.SelectedOption != nil && i == *st.SelectedOption:
			mark = "*"
		}
		fmt.Fprintf(cli.out, "%s %c. %s\n", mark, 'A'+i, option)
	}

	if fb := st.Feedback; fb != nil {
		fmt.Fprintln(cli.out)
		if fb.IsCorrect {
			fmt.Fprintln(cli.out, "Correct!")
		} else {
			fmt.Fprintf(cli.out, "Wrong. Correct answer was %s\n", optionText(view.Question.Options, fb.CorrectOption))
		}
		fmt.Fprintf(cli.out, "Explanation: %s\n", fb.Explanation)
	}
	fmt.Fprintln(cli.out)
}

func (cli *commandLine) printReview(sum quiz.Summary) {
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Quiz Completed!")
	fmt.Fprintln(cli.out, sum.Band.Message)
	fmt.Fprintf(cli.out, "Correct answers: %d  Final score: %d%%  Total questions: %d\n", sum.Score, sum.Percentage, sum.Total)
	if sum.Passed {
		fmt.Fprintln(cli.out, "Passed")
	} else {
		fmt.Fprintln(cli.out, "Not passed")
	}

	fmt.Fprintln(cli.out, "\nQuestion Review")
	for _, item := range sum.Items {
		mark := "✗"
		if item.IsCorrect {
			mark = "✓"
		}
		fmt.Fprintf(cli.out, "%s %d. %s\n", mark, item.Number, item.Question)
		if item.Answered {
			fmt.Fprintf(cli.out, "    Your answer: %s\n", item.ChosenText)
		} else {
			fmt.Fprintln(cli.out, "    Your answer: (none)")
		}
		if !item.IsCorrect {
			fmt.Fprintf(cli.out, "    Correct answer: %s\n", item.CorrectText)
		}
		fmt.Fprintf(cli.out, "    %s\n", item.Explanation)
	}
	fmt.Fprintf(cli.out, "\n\"%s\"\n\n", cli.quotes.Pick())
}

func optionText(options []string, index int) string {
	if index < 0 || index >= len(options) {
		return ""
	}
	return options[index]
}

// formatTime formats seconds as m:ss.
func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
