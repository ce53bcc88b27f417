package quiz

import (
	"math/rand"
	"sync"
	"time"
)

var motivationalQuotes = []string{
	"The expert in anything was once a beginner.",
	"Education is the most powerful weapon which you can use to change the world.",
	"The beautiful thing about learning is that no one can take it away from you.",
	"Success is the sum of small efforts repeated day in and day out.",
}

// Quotes picks motivational quotes shown on the student dashboard and after a quiz.
type Quotes struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuotes uses rnd as its random source; a nil rnd is seeded from the clock.
func NewQuotes(rnd *rand.Rand) *Quotes {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Quotes{rnd: rnd}
}

func (q *Quotes) Pick() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return motivationalQuotes[q.rnd.Intn(len(motivationalQuotes))]
}

// AllQuotes returns every known quote.
func AllQuotes() []string {
	all := make([]string, len(motivationalQuotes))
	copy(all, motivationalQuotes)
	return all
}
