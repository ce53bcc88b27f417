package main

import (
	"fmt"

	"github.com/trezcool/masomo-quiz/core/quiz"
)

func (cli *commandLine) listBanks() {
	for _, info := range cli.svc.Banks() {
		fmt.Fprintf(cli.out, "%-20s %-25s %-12s %2d questions  %s\n",
			info.ID, info.Title, info.Subject, info.QuestionCount, formatTime(int(info.TimeLimit)))
	}
}

// checkBanks prints the integrity issues of bankID, or of every bank if bankID is empty.
func (cli *commandLine) checkBanks(bankID string) error {
	var banks []*quiz.Bank
	if bankID != "" {
		bank, err := cli.svc.Bank(bankID)
		if err != nil {
			return err
		}
		banks = append(banks, bank)
	} else {
		for _, info := range cli.svc.Banks() {
			bank, err := cli.svc.Bank(info.ID)
			if err != nil {
				return err
			}
			banks = append(banks, bank)
		}
	}

	var found bool
	for _, bank := range banks {
		issues := bank.Check(cli.validate, cli.translator)
		if len(issues) == 0 {
			fmt.Fprintf(cli.out, "%s: ok\n", bank.ID)
			continue
		}
		found = true
		fmt.Fprintf(cli.out, "%s: %d issue(s)\n", bank.ID, len(issues))
		for _, iss := range issues {
			fmt.Fprintf(cli.out, "  - %s\n", iss)
		}
	}
	if found {
		return errIssues
	}
	return nil
}
