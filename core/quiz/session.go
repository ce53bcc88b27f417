package quiz

import "time"

var nowFunc = time.Now // mockable

// Session is one attempt at a Bank.
//
// The question being answered is the frontier. GoToPrevious only moves the
// displayed question back; answers recorded before the frontier are final and
// cannot be changed or re-scored.
type Session struct {
	bank      *Bank
	current   int // displayed question
	frontier  int // question being answered
	selected  int
	revealed  bool
	answers   []int
	score     int
	completed bool
	startedAt time.Time
}

// NewSession starts a session at the first question of bank.
func NewSession(bank *Bank) (*Session, error) {
	if bank == nil || len(bank.Questions) == 0 {
		return nil, ErrEmptyBank
	}
	s := &Session{bank: bank}
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.current = 0
	s.frontier = 0
	s.selected = Unanswered
	s.revealed = false
	s.answers = make([]int, len(s.bank.Questions))
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.score = 0
	s.completed = false
	s.startedAt = nowFunc().UTC()
}

func (s *Session) Bank() *Bank          { return s.bank }
func (s *Session) Score() int           { return s.score }
func (s *Session) Total() int           { return len(s.bank.Questions) }
func (s *Session) Completed() bool      { return s.completed }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Revisiting reports whether an earlier, already answered question is displayed.
func (s *Session) Revisiting() bool { return s.current < s.frontier }

// Question returns the displayed question.
func (s *Session) Question() Question { return s.bank.Questions[s.current] }

// SelectOption tentatively chooses an option for the current question.
// It is ignored once the answer is revealed or while revisiting.
func (s *Session) SelectOption(option int) error {
	if s.completed {
		return ErrSessionCompleted
	}
	if option < 0 || option >= len(s.bank.Questions[s.current].Options) {
		return ErrOptionOutOfRange
	}
	if s.revealed || s.Revisiting() {
		return nil
	}
	s.selected = option
	return nil
}

// SubmitAnswer records the selected option, scores it and reveals the feedback.
// A question is scored at most once: calling it again while revealed does nothing.
func (s *Session) SubmitAnswer() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.revealed || s.Revisiting() {
		return nil
	}
	if s.selected == Unanswered {
		return ErrNoSelection
	}

	// an out of range correct option never matches: the credit is simply lost
	s.answers[s.current] = s.selected
	if s.selected == s.bank.Questions[s.current].CorrectOption {
		s.score++
	}
	s.revealed = true
	return nil
}

// Advance moves past the revealed question, completing the session after the last one.
// Unanswered questions cannot be skipped: it does nothing until the answer is revealed.
func (s *Session) Advance() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.Revisiting() {
		s.current++
		return nil
	}
	if !s.revealed {
		return nil
	}
	if s.current == len(s.bank.Questions)-1 {
		s.completed = true
		return nil
	}
	s.current++
	s.frontier = s.current
	s.selected = Unanswered
	s.revealed = false
	return nil
}

// GoToPrevious displays the previous question (floored at the first one).
func (s *Session) GoToPrevious() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Finish completes the session early; unanswered questions score nothing.
func (s *Session) Finish() {
	s.completed = true
}

// Restart resets the session over the same bank.
func (s *Session) Restart() {
	s.reset()
}

// TimeRemaining is the countdown shown to the student.
// It is informative only and never gates a transition.
func (s *Session) TimeRemaining() time.Duration {
	if s.bank.TimeLimit <= 0 {
		return 0
	}
	left := s.bank.TimeLimit - nowFunc().Sub(s.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	st := State{
		CurrentIndex: s.current,
		Revealed:     s.revealed,
		Revisiting:   s.Revisiting(),
		Score:        s.score,
		Total:        len(s.bank.Questions),
		Answers:      make([]int, len(s.answers)),
		Completed:    s.completed,
	}
	copy(st.Answers, s.answers)
	if s.selected != Unanswered {
		selected := s.selected
		st.SelectedOption = &selected
	}
	if !s.completed && (s.revealed || st.Revisiting) {
		if chosen := s.answers[s.current]; chosen != Unanswered {
			q := s.bank.Questions[s.current]
			st.Feedback = &Feedback{
				ChosenOption:  chosen,
				CorrectOption: q.CorrectOption,
				IsCorrect:     chosen == q.CorrectOption,
				Explanation:   q.Explanation,
			}
		}
	}
	return st
}

// PublicQuestion returns the displayed question without its answer key.
func (s *Session) PublicQuestion() PublicQuestion {
	q := s.Question()
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{
		Number:  s.current + 1,
		Text:    q.Text,
		Options: options,
	}
}
