// Package leaderboard keeps the sorted, size-bounded record of finished games
// and persists it through a Store.
package leaderboard

import (
	"cmp"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultMaxEntries is the board size used when no option overrides it.
const DefaultMaxEntries = 10

// NotRanked is returned by AddEntry when the new record fell off the board.
const NotRanked = -1

// DateLayout is the timestamp format stored with every entry.
const DateLayout = "2006-01-02 15:04"

// Entry is a single finished game.
type Entry struct {
	ID           uuid.UUID `json:"-"` // In-memory identity, never persisted
	Score        int       `json:"score"`
	TimeTaken    float64   `json:"time_taken"`
	LevelReached int       `json:"level_reached"`
	Date         string    `json:"date"`
}

// better reports whether a ranks strictly ahead of b:
// higher score first, then the faster time.
func better(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.TimeTaken < b.TimeTaken
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.TimeTaken, b.TimeTaken)
}

// normalize clamps an entry into its valid ranges.
// A time that is NaN or infinite cannot be encoded and becomes 0.
func normalize(e Entry) Entry {
	e.Score = max(e.Score, 0)
	if math.IsNaN(e.TimeTaken) || math.IsInf(e.TimeTaken, 0) {
		e.TimeTaken = 0
	}
	e.TimeTaken = max(e.TimeTaken, 0)
	e.LevelReached = max(e.LevelReached, 1)
	return e
}

// Leaderboard is the ordered, bounded list of best games.
// All methods are safe for concurrent use; persistence happens under the lock
// so saves are serialised with insertions.
type Leaderboard struct {
	mu         sync.Mutex
	store      Store
	maxEntries int
	entries    []Entry
	lastErr    error
	logger     *log.Logger
	now        func() time.Time
}

// Option configures a Leaderboard.
type Option func(*Leaderboard)

// WithMaxEntries overrides the board size. Values below 1 are ignored.
func WithMaxEntries(n int) Option {
	return func(l *Leaderboard) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Leaderboard) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock sets the time source used to date new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Leaderboard) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a leaderboard backed by store and loads its persisted entries.
// A missing or unreadable store yields an empty board; the failure is logged.
func New(store Store, opts ...Option) *Leaderboard {
	l := &Leaderboard{
		store:      store,
		maxEntries: DefaultMaxEntries,
		logger:     log.New(io.Discard),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	_ = l.Load()
	return l
}

// Load replaces the in-memory entries with the persisted ones.
// On failure the board is left empty and the error is returned after being logged.
func (l *Leaderboard) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = l.entries[:0]
	if l.store == nil {
		return nil
	}

	loaded, err := l.store.Load()
	if err != nil {
		l.lastErr = err
		l.logger.Warn("leaderboard load failed, starting empty", "err", err)
		return err
	}

	for _, e := range loaded {
		e = normalize(e)
		e.ID = uuid.New()
		l.entries = append(l.entries, e)
	}
	slices.SortStableFunc(l.entries, compareEntries)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[:l.maxEntries]
	}
	return nil
}

// Save writes the full board to the store.
func (l *Leaderboard) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}

func (l *Leaderboard) saveLocked() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(slices.Clone(l.entries)); err != nil {
		l.lastErr = err
		l.logger.Warn("leaderboard save failed, keeping in-memory board", "err", err)
		return err
	}
	return nil
}

// AddEntry records a finished game and returns its 1-based rank,
// or NotRanked if it did not make the board. Out-of-range values are clamped:
// negative score and time become 0, a NaN or infinite time becomes 0,
// a level below 1 becomes 1.
func (l *Leaderboard) AddEntry(score int, timeTaken float64, levelReached int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := normalize(Entry{
		ID:           uuid.New(),
		Score:        score,
		TimeTaken:    timeTaken,
		LevelReached: levelReached,
		Date:         l.now().Format(DateLayout),
	})

	// Insert after every entry that is not strictly worse, so equal records keep
	// their existing rank.
	pos, _ := slices.BinarySearchFunc(l.entries, entry, func(existing, target Entry) int {
		if better(target, existing) {
			return 1
		}
		return -1
	})
	l.entries = slices.Insert(l.entries, pos, entry)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[:l.maxEntries]
	}

	_ = l.saveLocked()

	rank := slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == entry.ID })
	if rank < 0 {
		l.logger.Debug("entry did not make the leaderboard", "score", entry.Score)
		return NotRanked
	}
	l.logger.Info("leaderboard entry added", "score", entry.Score, "rank", rank+1)
	return rank + 1
}

// TopEntries returns a copy of the first n entries in rank order.
func (l *Leaderboard) TopEntries(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 {
		return []Entry{}
	}
	n = min(n, len(l.entries))
	return slices.Clone(l.entries[:n])
}

// Entries returns a copy of the whole board.
func (l *Leaderboard) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Len returns the number of entries on the board.
func (l *Leaderboard) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// MaxEntries returns the board size.
func (l *Leaderboard) MaxEntries() int {
	return l.maxEntries
}

// Qualifies reports whether a game with this score and time would be ranked.
func (l *Leaderboard) Qualifies(score int, timeTaken float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) < l.maxEntries {
		return true
	}
	candidate := normalize(Entry{Score: score, TimeTaken: timeTaken})
	return better(candidate, l.entries[len(l.entries)-1])
}

// HighScore returns the best score on the board, or 0 when empty.
func (l *Leaderboard) HighScore() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].Score
}

// LastError returns the most recent persistence failure, if any.
func (l *Leaderboard) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
