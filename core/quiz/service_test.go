package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-quiz/core"
)

// mapRepo is a minimal Repository for service tests.
type mapRepo struct {
	sync.Mutex
	recs map[string]*Record
}

func newMapRepo() *mapRepo { return &mapRepo{recs: make(map[string]*Record)} }

func (r *mapRepo) CreateSession(rec Record) (Record, error) {
	r.Lock()
	defer r.Unlock()
	r.recs[rec.ID] = &rec
	return rec, nil
}

func (r *mapRepo) ViewSession(id string, fn func(rec Record) error) error {
	r.Lock()
	defer r.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(*rec)
}

func (r *mapRepo) UpdateSession(id string, fn func(rec *Record) error) error {
	r.Lock()
	defer r.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(rec)
}

func (r *mapRepo) DeleteSession(id string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.recs[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.recs, id)
	return nil
}

func (r *mapRepo) IdleSessions(before time.Time) ([]string, error) {
	r.Lock()
	defer r.Unlock()
	var ids []string
	for id, rec := range r.recs {
		if rec.UpdatedAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// logRecorder keeps the messages logged per level.
type logRecorder struct {
	sync.Mutex
	msgs map[string][]string
}

var _ core.Logger = (*logRecorder)(nil)

func (l *logRecorder) log(level, msg string) {
	l.Lock()
	defer l.Unlock()
	if l.msgs == nil {
		l.msgs = make(map[string][]string)
	}
	l.msgs[level] = append(l.msgs[level], msg)
}

func (l *logRecorder) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *logRecorder) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *logRecorder) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *logRecorder) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *logRecorder) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

func setupService(t *testing.T, banks ...*Bank) (*Service, *mapRepo, *logRecorder) {
	validate, translator := core.NewValidator()
	InitValidators(validate, translator)
	repo := newMapRepo()
	logger := &logRecorder{}
	svc := NewService(repo, logger, validate, translator)
	require.NoError(t, svc.RegisterBanks(banks...))
	return svc, repo, logger
}

func TestService_RegisterBanks(t *testing.T) {
	svc, _, logger := setupService(t, SampleBanks()...)
	assert.Empty(t, logger.msgs["warn"])

	infos := svc.Banks()
	require.Len(t, infos, 2)
	assert.Equal(t, BankInfo{
		ID:            "mathematics",
		Title:         "Mathematics Quiz",
		Subject:       "Mathematics",
		QuestionCount: 5,
		TimeLimit:     300,
	}, infos[0])

	tests := []struct {
		name    string
		bank    *Bank
		wantErr error
	}{
		{name: "duplicate", bank: SampleBanks()[1], wantErr: ErrBankExists},
		{name: "empty", bank: &Bank{ID: "empty", Title: "Empty"}, wantErr: ErrEmptyBank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RegisterBanks(tt.bank)
			assert.Equal(t, tt.wantErr, errors.Cause(err))
		})
	}

	t.Run("integrity issues are only logged", func(t *testing.T) {
		require.NoError(t, svc.RegisterBanks(newTestBank(0, 5)))
		assert.Len(t, logger.msgs["warn"], 1)
		_, err := svc.Bank("TEST")
		assert.NoError(t, err)
	})
}

func TestService_RegisterBanks_mixedCaseID(t *testing.T) {
	bank := newTestBank(0, 1)
	bank.ID = " Physics "
	svc, _, _ := setupService(t, bank)

	tests := []struct {
		name string
		id   string
	}{
		{name: "as registered", id: "Physics"},
		{name: "lower case", id: "physics"},
		{name: "upper case", id: "PHYSICS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.Start(tt.id, Student{})
			require.NoError(t, err)
			assert.Equal(t, "physics", view.Bank.ID)
		})
	}

	dup := newTestBank(0)
	dup.ID = "PHYSICS"
	assert.Equal(t, ErrBankExists, errors.Cause(svc.RegisterBanks(dup)))
}

func TestService_Start(t *testing.T) {
	svc, _, _ := setupService(t, SampleBanks()...)

	t.Run("unknown bank", func(t *testing.T) {
		_, err := svc.Start("history", Student{})
		assert.Equal(t, ErrBankNotFound, err)
	})

	t.Run("ok", func(t *testing.T) {
		view, err := svc.Start(" Mathematics ", Student{Name: " Amani ", Email: "AMANI@Test.cd"})
		require.NoError(t, err)
		assert.Len(t, view.ID, 36)
		assert.Equal(t, "mathematics", view.Bank.ID)
		assert.Equal(t, Student{Name: "Amani", Email: "amani@test.cd"}, view.Student)
		assert.Equal(t, 1, view.Question.Number)
		assert.Equal(t, 5, view.State.Total)
		assert.InDelta(t, 300, view.TimeRemaining, 1)

		got, err := svc.Get(view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		a, err := svc.Start("mathematics", Student{})
		require.NoError(t, err)
		b, err := svc.Start("mathematics", Student{})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		_, err = svc.Select(a.ID, 0)
		require.NoError(t, err)
		_, err = svc.Submit(a.ID)
		require.NoError(t, err)

		got, err := svc.Get(b.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.State.Score)
		assert.False(t, got.State.Revealed)
	})
}

func TestService_Transitions(t *testing.T) {
	svc, _, logger := setupService(t, SampleBanks()...)
	view, err := svc.Start("mathematics", Student{Name: "Amani"})
	require.NoError(t, err)
	id := view.ID

	_, err = svc.Submit(id)
	assert.Equal(t, ErrNoSelection, err)

	_, err = svc.Select(id, 9)
	assert.Equal(t, ErrOptionOutOfRange, err)
	assert.Len(t, logger.msgs["warn"], 1)

	for _, opt := range []int{0, 2, 1} {
		_, err = svc.Select(id, opt)
		require.NoError(t, err)
		view, err = svc.Submit(id)
		require.NoError(t, err)
		require.NotNil(t, view.State.Feedback)
		view, err = svc.Advance(id)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, view.Question.Number)
	assert.Equal(t, 2, view.State.Score)

	view, err = svc.Previous(id)
	require.NoError(t, err)
	assert.True(t, view.State.Revisiting)
	assert.Equal(t, 3, view.Question.Number)

	_, err = svc.Review(id)
	assert.Equal(t, ErrNotCompleted, err)

	view, err = svc.Finish(id)
	require.NoError(t, err)
	assert.True(t, view.State.Completed)

	sum, err := svc.Review(id)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Score)
	assert.Equal(t, 40, sum.Percentage)

	_, err = svc.Advance(id)
	assert.Equal(t, ErrSessionCompleted, err)

	view, err = svc.Restart(id)
	require.NoError(t, err)
	assert.False(t, view.State.Completed)
	assert.Equal(t, 0, view.State.Score)

	require.NoError(t, svc.Abandon(id))
	_, err = svc.Get(id)
	assert.Equal(t, ErrSessionNotFound, err)
	assert.Equal(t, ErrSessionNotFound, svc.Abandon(id))
}

func TestService_PurgeIdle(t *testing.T) {
	defer func() { nowFunc = time.Now }()
	start := time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return start }

	svc, repo, _ := setupService(t, SampleBanks()...)
	idle, err := svc.Start("mathematics", Student{})
	require.NoError(t, err)
	active, err := svc.Start("mathematics", Student{})
	require.NoError(t, err)

	nowFunc = func() time.Time { return start.Add(90 * time.Minute) }
	_, err = svc.Select(active.ID, 1)
	require.NoError(t, err)

	tests := []struct {
		name string
		ttl  time.Duration
		want int
	}{
		{name: "disabled", ttl: 0, want: 0},
		{name: "nothing idle yet", ttl: 2 * time.Hour, want: 0},
		{name: "purge", ttl: time.Hour, want: 1},
		{name: "already purged", ttl: time.Hour, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := svc.PurgeIdle(tt.ttl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	_, err = svc.Get(idle.ID)
	assert.Equal(t, ErrSessionNotFound, err)
	assert.Len(t, repo.recs, 1)
}

func TestQuotes_Pick(t *testing.T) {
	quotes := NewQuotes(nil)
	all := AllQuotes()
	for i := 0; i < 20; i++ {
		assert.Contains(t, all, quotes.Pick())
	}
}
