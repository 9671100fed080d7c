package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"OnlineShop/internal/shop"
)

type Purchase struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Total     decimal.Decimal       `json:"total"`
	Computer  shop.ComputerSnapshot `json:"computer"`
	CreatedAt time.Time             `json:"created_at"`
}

// Ledger records sold computers. Only the in-memory implementation exists;
// the catalog itself does not outlive the process either.
type Ledger interface {
	Record(ctx context.Context, p Purchase) error
	Get(ctx context.Context, id string) (Purchase, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Purchase, error)
	Ping(ctx context.Context) error
}

type MemLedger struct {
	mu sync.RWMutex
	m  map[string]Purchase
}

func NewMemLedger() *MemLedger {
	return &MemLedger{m: map[string]Purchase{}}
}

func (l *MemLedger) Ping(ctx context.Context) error { return ctx.Err() }

func (l *MemLedger) Record(ctx context.Context, p Purchase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[p.ID] = p
	return nil
}

func (l *MemLedger) Get(ctx context.Context, id string) (Purchase, bool, error) {
	if err := ctx.Err(); err != nil {
		return Purchase{}, false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.m[id]
	return p, ok, nil
}

func (l *MemLedger) ListByUser(ctx context.Context, userID string) ([]Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Purchase, 0)
	for _, p := range l.m {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Purchase) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}
