// Package ledger owns the investor document and applies every mutation to it.
//
// A Ledger loads the document once, serializes mutations with a mutex and
// persists the full document after each one. Mutations run against a copy
// which is swapped in only after a successful save, so a failed write never
// leaves the in-memory state ahead of the store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/havanahub/investors/internal/calculator"
	"github.com/havanahub/investors/internal/models"
	"github.com/havanahub/investors/internal/storage"
)

var (
	// ErrValidation is returned when a mutation's input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an investor ID does not exist.
	ErrNotFound = errors.New("investor not found")

	// ErrConfirmationRequired is returned by DeleteInvestor without confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// DateLayout is the format of defaulted dates.
const DateLayout = "2006-01-02"

// Op names a mutation for hooks, logs and metrics.
type Op string

const (
	OpAddInvestor    Op = "add_investor"
	OpEditInvestor   Op = "edit_investor"
	OpDeleteInvestor Op = "delete_investor"
	OpAddPayout      Op = "add_payout"
	OpImportJSON     Op = "import_json"
	OpImportCSV      Op = "import_csv"
)

// Hook observes every mutation attempt. doc is the committed document when
// err is nil and the unchanged current document otherwise; hooks must not
// modify it.
type Hook func(op Op, doc *models.Document, err error)

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// WithClock replaces the clock used to default payout dates.
func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) { l.now = fn }
}

// WithHook registers a hook called after every mutation attempt.
func WithHook(h Hook) Option {
	return func(l *Ledger) { l.hooks = append(l.hooks, h) }
}

// Ledger is the single owner of the investor document.
type Ledger struct {
	mu    sync.RWMutex
	store storage.Store
	doc   *models.Document

	newID func() string
	now   func() time.Time
	hooks []Hook
}

// Open loads the document from store. The store creates and persists an
// empty document on first use; a corrupt blob is returned as an error.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	l.doc = doc

	slog.Info("Ledger loaded",
		"investors", len(doc.Investors),
		"payouts", len(doc.Payouts),
	)
	return l, nil
}

// Document returns a copy of the current document.
func (l *Ledger) Document() *models.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Clone()
}

// Summary aggregates the current document.
func (l *Ledger) Summary() calculator.Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculator.Summarize(l.doc)
}

// Snapshot returns a copy of the document together with its summary, taken
// under one read lock.
func (l *Ledger) Snapshot() (*models.Document, calculator.Summary) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Clone(), calculator.Summarize(l.doc)
}

// commit applies fn to a copy of the document, saves the copy and swaps it
// in. When fn or the save fails the current document is left as it was.
func (l *Ledger) commit(ctx context.Context, op Op, fn func(doc *models.Document) error) error {
	l.mu.Lock()
	next := l.doc.Clone()
	err := fn(next)
	if err == nil {
		if err = l.store.Save(ctx, next); err != nil {
			err = fmt.Errorf("failed to save ledger: %w", err)
		} else {
			l.doc = next
		}
	}
	current := l.doc
	l.mu.Unlock()

	for _, h := range l.hooks {
		h(op, current, err)
	}
	return err
}

// reject reports an input error to the hooks without touching the document.
func (l *Ledger) reject(op Op, err error) error {
	l.mu.RLock()
	current := l.doc
	l.mu.RUnlock()

	for _, h := range l.hooks {
		h(op, current, err)
	}
	return err
}

// today is the current UTC date.
func (l *Ledger) today() string {
	return l.now().UTC().Format(DateLayout)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
