package uploads

import (
	"sync"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
)

// Latest is an observer-side view holding the newest snapshot of every record
// it has been shown. Safe for concurrent use.
type Latest struct {
	mu   sync.Mutex
	byID map[string]models.Upload
}

func NewLatest() *Latest {
	return &Latest{byID: make(map[string]models.Upload)}
}

// Observe stores u unless a snapshot with the same or a higher Version is
// already held. It reports whether u was stored.
func (l *Latest) Observe(u models.Upload) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.byID[u.ID]; ok && cur.Version >= u.Version {
		return false
	}
	l.byID[u.ID] = u
	return true
}

func (l *Latest) Get(id string) (models.Upload, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.byID[id]
	return u, ok
}
