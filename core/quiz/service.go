package quiz

import (
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-quiz/core"
)

type (
	// Record is a live session and who it belongs to.
	Record struct {
		ID        string
		Student   Student
		Session   *Session
		UpdatedAt time.Time // UTC
	}

	Repository interface {
		CreateSession(rec Record) (Record, error)
		// ViewSession calls fn with the record while no update can run on it.
		ViewSession(id string, fn func(rec Record) error) error
		// UpdateSession calls fn with exclusive access to the record, then stores it.
		UpdateSession(id string, fn func(rec *Record) error) error
		DeleteSession(id string) error
		// IdleSessions returns the ids of the sessions not updated since before.
		IdleSessions(before time.Time) ([]string, error)
	}

	// View is what presentation adapters render after every transition.
	View struct {
		ID            string         `json:"id"`
		Bank          BankInfo       `json:"bank"`
		Student       Student        `json:"student"`
		Question      PublicQuestion `json:"question"`
		State         State          `json:"state"`
		TimeRemaining float64        `json:"time_remaining"` // seconds; informative only
	}

	Service struct {
		repo       Repository
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator

		mu    sync.RWMutex
		banks map[string]*Bank
		order []string
	}
)

func NewService(repo Repository, logger core.Logger, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		validate:   validate,
		translator: translator,
		banks:      make(map[string]*Bank),
	}
}

// RegisterBanks makes banks available to new sessions.
// Ids are lower-cased. Integrity issues are logged, not rejected; only empty banks and duplicate ids are refused.
func (svc *Service) RegisterBanks(banks ...*Bank) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, bank := range banks {
		bank.ID = core.CleanString(bank.ID, true /* lower */)
		if len(bank.Questions) == 0 {
			return errors.Wrapf(ErrEmptyBank, "registering bank %q", bank.ID)
		}
		if _, ok := svc.banks[bank.ID]; ok {
			return errors.Wrapf(ErrBankExists, "registering bank %q", bank.ID)
		}
		if issues := bank.Check(svc.validate, svc.translator); len(issues) > 0 {
			msgs := make([]string, 0, len(issues))
			for _, iss := range issues {
				msgs = append(msgs, iss.String())
			}
			svc.logger.Warn("question bank "+bank.ID+" has integrity issues", map[string]interface{}{"issues": msgs})
		}
		svc.banks[bank.ID] = bank
		svc.order = append(svc.order, bank.ID)
	}
	return nil
}

// Banks lists the registered banks in registration order.
func (svc *Service) Banks() []BankInfo {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	infos := make([]BankInfo, 0, len(svc.order))
	for _, id := range svc.order {
		infos = append(infos, svc.banks[id].Info())
	}
	return infos
}

func (svc *Service) Bank(id string) (*Bank, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	bank, ok := svc.banks[core.CleanString(id, true /* lower */)]
	if !ok {
		return nil, ErrBankNotFound
	}
	return bank, nil
}

// Start begins a new session on the bank bankID.
func (svc *Service) Start(bankID string, student Student) (View, error) {
	bank, err := svc.Bank(bankID)
	if err != nil {
		return View{}, err
	}
	sess, err := NewSession(bank)
	if err != nil {
		return View{}, err
	}

	student.Name = core.CleanString(student.Name)
	student.Email = core.CleanString(student.Email, true /* lower */)
	rec, err := svc.repo.CreateSession(Record{
		ID:        uuid.New().String(),
		Student:   student,
		Session:   sess,
		UpdatedAt: nowFunc().UTC(),
	})
	if err != nil {
		return View{}, errors.Wrap(err, "creating session")
	}
	return newView(rec), nil
}

func (svc *Service) Get(id string) (View, error) {
	var view View
	err := svc.repo.ViewSession(id, func(rec Record) error {
		view = newView(rec)
		return nil
	})
	return view, err
}

func (svc *Service) Select(id string, option int) (View, error) {
	return svc.update(id, func(s *Session) error { return s.SelectOption(option) })
}

func (svc *Service) Submit(id string) (View, error) {
	return svc.update(id, (*Session).SubmitAnswer)
}

func (svc *Service) Advance(id string) (View, error) {
	return svc.update(id, (*Session).Advance)
}

func (svc *Service) Previous(id string) (View, error) {
	return svc.update(id, (*Session).GoToPrevious)
}

func (svc *Service) Restart(id string) (View, error) {
	return svc.update(id, func(s *Session) error {
		s.Restart()
		return nil
	})
}

func (svc *Service) Finish(id string) (View, error) {
	return svc.update(id, func(s *Session) error {
		s.Finish()
		return nil
	})
}

// Review returns the Summary of a completed session.
func (svc *Service) Review(id string) (Summary, error) {
	var sum Summary
	err := svc.repo.ViewSession(id, func(rec Record) error {
		var err error
		sum, err = Review(rec.Session)
		return err
	})
	return sum, err
}

// Abandon discards a session.
func (svc *Service) Abandon(id string) error {
	return svc.repo.DeleteSession(id)
}

// PurgeIdle discards the sessions idle for longer than ttl and returns how many were dropped.
func (svc *Service) PurgeIdle(ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	ids, err := svc.repo.IdleSessions(nowFunc().UTC().Add(-ttl))
	if err != nil {
		return 0, errors.Wrap(err, "listing idle sessions")
	}
	var purged int
	for _, id := range ids {
		if err := svc.repo.DeleteSession(id); err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				continue
			}
			return purged, errors.Wrap(err, "deleting idle session")
		}
		purged++
	}
	return purged, nil
}

func (svc *Service) update(id string, transition func(s *Session) error) (View, error) {
	var view View
	err := svc.repo.UpdateSession(id, func(rec *Record) error {
		if err := transition(rec.Session); err != nil {
			if core.IsMisuse(err) {
				svc.logger.Warn("quiz session misuse", err, map[string]interface{}{"session": rec.ID}, rec.Student)
			}
			return err
		}
		rec.UpdatedAt = nowFunc().UTC()
		view = newView(*rec)
		return nil
	})
	return view, err
}

func newView(rec Record) View {
	return View{
		ID:            rec.ID,
		Bank:          rec.Session.Bank().Info(),
		Student:       rec.Student,
		Question:      rec.Session.PublicQuestion(),
		State:         rec.Session.State(),
		TimeRemaining: rec.Session.TimeRemaining().Seconds(),
	}
}
