package inmemdb

import (
	"sync"

	"github.com/trezcool/masomo-quiz/core/quiz"
)

type (
	DB struct {
		session *sessionTable
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*quiz.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		session: &sessionTable{table: make(map[string]*quiz.Record)},
	}
	return db, nil
}

// Len returns the number of live sessions.
func (db *DB) Len() int {
	db.session.RLock()
	defer db.session.RUnlock()
	return len(db.session.table)
}
