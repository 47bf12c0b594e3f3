package console

import (
	"context"
	"errors"
	"sync"

	"proxym-fin/internal/client"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSuperseded marks a load whose response arrived after a newer load
	// (or a kind switch) took over; its results were discarded.
	ErrSuperseded = errors.New("load superseded")

	ErrNoModal        = errors.New("no modal open")
	ErrSaveInFlight   = errors.New("save already in flight")
	ErrDeleteInFlight = errors.New("delete already in flight")
	ErrNoSuchRecord   = errors.New("record not in current view")
)

// Console is the long-lived administration engine. All reads and mutations
// of the active record set go through its transitions; the visible list
// always reflects the last successful load.
type Console struct {
	rc     *client.Client
	logger *zap.Logger

	mu      sync.Mutex
	kind    Kind
	schema  Schema
	records []Entity
	query   string
	loading bool
	loadErr error
	// token of the authoritative in-flight load; responses carrying any
	// other token are stale and must be discarded.
	token uuid.UUID

	modal    *modalState
	saving   bool
	deleting bool
}

type modalState struct {
	draft   Entity
	editing bool
	id      int64
}

func New(rc *client.Client, logger *zap.Logger) *Console {
	return &Console{
		rc:     rc,
		logger: logger,
		kind:   KindProduct,
		schema: SchemaFor(KindProduct),
	}
}

func (c *Console) Kind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// SetKind switches the active entity kind. Any in-flight load is superseded;
// the query and modal are reset. Panics on an unknown kind.
func (c *Console) SetKind(kind Kind) {
	schema := SchemaFor(kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	if kind == c.kind {
		return
	}
	c.kind = kind
	c.schema = schema
	c.records = nil
	c.query = ""
	c.loading = false
	c.loadErr = nil
	c.modal = nil
	c.token = uuid.New()
}

// Load fetches the active kind's full collection. Only the most recently
// issued load may update the table; a superseded response is dropped and
// reported as ErrSuperseded.
func (c *Console) Load(ctx context.Context) error {
	c.mu.Lock()
	token := uuid.New()
	c.token = token
	c.loading = true
	schema := c.schema
	c.mu.Unlock()

	entities, err := schema.list(ctx, c.rc)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != token {
		return ErrSuperseded
	}
	c.loading = false
	if err != nil {
		c.logger.Warn("Collection load failed",
			zap.String("kind", string(schema.Kind)),
			zap.Error(err),
		)
		c.loadErr = err
		return err
	}
	c.loadErr = nil
	c.records = entities
	return nil
}

func (c *Console) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Saving reports whether a save is in flight.
func (c *Console) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Deleting reports whether a delete is in flight.
func (c *Console) Deleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

// Err returns the error of the last load, if it failed. A nil error with an
// empty table means the collection really is empty.
func (c *Console) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Search installs a local filter query. Purely client-side; never refetches.
func (c *Console) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

func (c *Console) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Visible returns the filtered record set in load order.
func (c *Console) Visible() []Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entity, 0, len(c.records))
	for _, e := range c.records {
		if matches(e, c.query) {
			out = append(out, e)
		}
	}
	return out
}

// Rows projects the visible records for the table renderer.
func (c *Console) Rows() []Row {
	visible := c.Visible()
	rows := make([]Row, 0, len(visible))
	for _, e := range visible {
		rows = append(rows, RowOf(e))
	}
	return rows
}

// OpenCreate opens the modal with the kind's default draft.
func (c *Console) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = &modalState{draft: c.schema.New()}
}

// OpenEdit opens the modal with a shallow copy of the selected record.
func (c *Console) OpenEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.records {
		if e.EntityID() == id {
			c.modal = &modalState{
				draft:   c.schema.Clone(e),
				editing: true,
				id:      id,
			}
			return nil
		}
	}
	return ErrNoSuchRecord
}

func (c *Console) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = nil
}

func (c *Console) ModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal != nil
}

// SetField writes a form value into the open modal draft.
func (c *Console) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == nil {
		return ErrNoModal
	}
	return c.schema.Apply(c.modal.draft, field, value)
}

// Save submits the modal draft: update when editing, create otherwise. On
// failure the modal stays open with the draft intact so the user can retry;
// on success the modal closes and the collection is reloaded. A second save
// while one is in flight is rejected.
func (c *Console) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.modal == nil {
		c.mu.Unlock()
		return ErrNoModal
	}
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	if err := c.schema.validate(c.modal.draft); err != nil {
		c.mu.Unlock()
		return err
	}
	c.saving = true
	draft := c.modal.draft
	editing := c.modal.editing
	schema := c.schema
	c.mu.Unlock()

	var err error
	if editing {
		err = schema.update(ctx, c.rc, draft)
	} else {
		err = schema.create(ctx, c.rc, draft)
	}

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.modal = nil
	c.mu.Unlock()

	return c.Load(ctx)
}

// Delete removes a record by id after explicit confirmation. Without
// confirmation it is a no-op. On failure the displayed list is left at the
// last successful load. A second delete while one is in flight is rejected.
func (c *Console) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return nil
	}

	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deleting = true
	schema := c.schema
	c.mu.Unlock()

	err := schema.remove(ctx, c.rc, id)

	c.mu.Lock()
	c.deleting = false
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Delete failed",
			zap.String("kind", string(schema.Kind)),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return err
	}
	return c.Load(ctx)
}
