package inmemdb

import (
	"time"

	"github.com/trezcool/masomo-quiz/core/quiz"
)

type sessionRepository struct {
	db *sessionTable
}

var _ quiz.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) quiz.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(rec quiz.Record) (quiz.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *sessionRepository) ViewSession(id string, fn func(rec quiz.Record) error) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rec, ok := repo.db.table[id]
	if !ok {
		return quiz.ErrSessionNotFound
	}
	return fn(*rec)
}

func (repo *sessionRepository) UpdateSession(id string, fn func(rec *quiz.Record) error) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.table[id]
	if !ok {
		return quiz.ErrSessionNotFound
	}
	return fn(rec)
}

func (repo *sessionRepository) DeleteSession(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return quiz.ErrSessionNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *sessionRepository) IdleSessions(before time.Time) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ids := make([]string, 0)
	for id, rec := range repo.db.table {
		if rec.UpdatedAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
