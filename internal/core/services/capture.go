package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/core/ports/driving"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// Ensure Capture implements the interface.
var _ driving.CaptureService = (*Capture)(nil)

// Capture owns the working draft. Every mutation is validated against the
// section catalog and persisted immediately, so a field set from one CLI
// invocation is still there for the next.
type Capture struct {
	drafts driven.DraftStore

	mu    sync.Mutex
	draft *domain.Draft
}

// NewCapture creates a capture service backed by the given draft store.
func NewCapture(drafts driven.DraftStore) *Capture {
	return &Capture{drafts: drafts}
}

// Current returns the working draft, loading the stored one or starting
// fresh on first call.
func (c *Capture) Current(ctx context.Context) (*domain.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(ctx)
}

func (c *Capture) currentLocked(ctx context.Context) (*domain.Draft, error) {
	if c.draft != nil {
		return c.draft, nil
	}
	stored, err := c.drafts.Load(ctx)
	switch {
	case err == nil:
		c.draft = stored
	case errors.Is(err, domain.ErrNoDraft):
		c.draft = domain.NewDraft()
		logger.Debug("no stored draft, starting fresh: %s", c.draft.ID)
	default:
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return c.draft, nil
}

// SetField sets one identity or singular-section field and persists.
func (c *Capture) SetField(ctx context.Context, section, field string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.currentLocked(ctx)
	if err != nil {
		return err
	}
	if err := d.SetField(section, field, value); err != nil {
		return err
	}
	return c.persistLocked(ctx, d)
}

// AppendItem appends an empty record to a repeatable section and persists.
func (c *Capture) AppendItem(ctx context.Context, section string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.currentLocked(ctx)
	if err != nil {
		return 0, err
	}
	idx, err := d.AppendItem(section)
	if err != nil {
		return 0, err
	}
	if err := c.persistLocked(ctx, d); err != nil {
		return 0, err
	}
	return idx, nil
}

// SetItemField sets one field of a repeatable-section record and persists.
func (c *Capture) SetItemField(ctx context.Context, section string, index int, field string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.currentLocked(ctx)
	if err != nil {
		return err
	}
	if err := d.SetItemField(section, index, field, value); err != nil {
		return err
	}
	return c.persistLocked(ctx, d)
}

// Replace swaps in a complete draft as the working draft and persists it.
func (c *Capture) Replace(ctx context.Context, draft *domain.Draft) error {
	if draft == nil {
		return fmt.Errorf("%w: nil draft", domain.ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = draft
	return c.persistLocked(ctx, draft)
}

// Reset discards the working draft and its stored copy.
func (c *Capture) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = nil
	if err := c.drafts.Clear(ctx); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// forget drops the in-memory draft after the stored copy was cleared by a
// successful push.
func (c *Capture) forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
}

func (c *Capture) persistLocked(ctx context.Context, d *domain.Draft) error {
	if err := c.drafts.Save(ctx, d); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}
	return nil
}
