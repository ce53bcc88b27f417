package quiz

// Band is a qualitative tier of a final percentage.
type Band struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

var (
	BandExcellent     = Band{Name: "excellent", Message: "Excellent work!", Severity: "success"}
	BandGood          = Band{Name: "good", Message: "Good job!", Severity: "info"}
	BandNeedsPractice = Band{Name: "needs practice", Message: "Keep practicing!", Severity: "warning"}
	BandPoor          = Band{Name: "poor", Message: "Need more practice", Severity: "danger"}
)

// BandFor buckets a percentage into its Band.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= PassMark:
		return BandGood
	case percentage >= 40:
		return BandNeedsPractice
	default:
		return BandPoor
	}
}

// Percentage returns 100*score/total rounded half up.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// ReviewItem is the outcome of one question.
// An unanswered question has ChosenOption == Unanswered and ChosenText shows the first option.
type ReviewItem struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	Answered      bool   `json:"answered"`
	ChosenOption  int    `json:"chosen_option"`
	ChosenText    string `json:"chosen_text"`
	CorrectOption int    `json:"correct_option"`
	CorrectText   string `json:"correct_text"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// Summary is the review of a completed session.
type Summary struct {
	BankID     string       `json:"bank_id"`
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage int          `json:"percentage"`
	Passed     bool         `json:"passed"`
	Band       Band         `json:"band"`
	Items      []ReviewItem `json:"items"`
}

// Review computes the Summary of a completed session.
// It has no side effects: the same session always yields the same Summary.
func Review(s *Session) (Summary, error) {
	if !s.Completed() {
		return Summary{}, ErrNotCompleted
	}

	total := s.Total()
	pct := Percentage(s.score, total)
	sum := Summary{
		BankID:     s.bank.ID,
		Score:      s.score,
		Total:      total,
		Percentage: pct,
		Passed:     pct >= PassMark,
		Band:       BandFor(pct),
		Items:      make([]ReviewItem, 0, total),
	}
	for i, q := range s.bank.Questions {
		chosen := s.answers[i]
		display := chosen
		if chosen == Unanswered {
			display = 0
		}
		sum.Items = append(sum.Items, ReviewItem{
			Number:        i + 1,
			Question:      q.Text,
			Answered:      chosen != Unanswered,
			ChosenOption:  chosen,
			ChosenText:    q.OptionText(display),
			CorrectOption: q.CorrectOption,
			CorrectText:   q.OptionText(q.CorrectOption),
			IsCorrect:     chosen != Unanswered && chosen == q.CorrectOption,
			Explanation:   q.Explanation,
		})
	}
	return sum, nil
}
