// Package crud orchestrates create/read/update/delete requests between a
// transport-facing data object and a storage entity. Storage is delegated to a
// Persistence collaborator and conversion to Hooks supplied per resource.
package crud

import (
	"context"
	"fmt"
)

// Controller serves CRUD requests for one resource.
// It holds no state between calls. Post's duplicate check and the following
// create are not atomic; the Persistence is expected to reject a losing
// concurrent create on its own.
type Controller[D any, E any, ID comparable] struct {
	store Persistence[E, ID]
	hooks Hooks[D, E]
	cfg   Config
}

// NewController panics when a hook is missing.
func NewController[D any, E any, ID comparable](store Persistence[E, ID], hooks Hooks[D, E], cfg Config) *Controller[D, E, ID] {
	hooks.check()
	return &Controller[D, E, ID]{
		store: store,
		hooks: hooks,
		cfg:   cfg.withDefaults(),
	}
}

// Resource returns the configured resource name.
func (c *Controller[D, E, ID]) Resource() string {
	return c.cfg.Resource
}

// ParseID converts a raw identifier into the resource's key type.
func (c *Controller[D, E, ID]) ParseID(raw string) (ID, error) {
	return c.store.ParsePrimaryKey(raw)
}

// Post creates a new entity from object and returns its key.
// Returns ErrDuplicate if an entity with the same natural key exists.
func (c *Controller[D, E, ID]) Post(ctx context.Context, object D) (ID, error) {
	var zero ID

	existing, err := c.hooks.FindExisting(ctx, object)
	if err != nil {
		return zero, err
	}
	if len(existing) > 0 {
		return zero, fmt.Errorf("%s: %w", c.cfg.Resource, ErrDuplicate)
	}

	if err := c.validate(ctx, object); err != nil {
		return zero, err
	}

	created, err := c.store.Create(ctx, c.hooks.ToEntity(object))
	if err != nil {
		return zero, err
	}

	id := c.store.PrimaryKey(created)
	c.cfg.Logger.DebugContext(ctx, "created entity", "resource", c.cfg.Resource, "id", id)
	return id, nil
}

// Get returns the object stored under id, relationships included.
// Returns ErrNotFound if there is none.
func (c *Controller[D, E, ID]) Get(ctx context.Context, id ID) (D, error) {
	var zero D

	entity, err := c.find(ctx, id)
	if err != nil {
		return zero, err
	}

	return c.hooks.ToDO(ctx, entity, true)
}

// Put overwrites the entity stored under id with object.
// Returns ErrNotFound if there is none, and a *ValidationError if object
// carries a different key than id.
func (c *Controller[D, E, ID]) Put(ctx context.Context, id ID, object D) error {
	entity, err := c.find(ctx, id)
	if err != nil {
		return err
	}

	if !c.cfg.SkipIdentityCheck {
		if key := c.store.PrimaryKey(c.hooks.ToEntity(object)); key != id {
			return identityViolation(c.cfg.KeyField, id, key)
		}
	}

	if err := c.validate(ctx, object); err != nil {
		return err
	}

	if err := c.store.Update(ctx, c.hooks.ApplyToEntity(object, entity)); err != nil {
		return err
	}

	c.cfg.Logger.DebugContext(ctx, "updated entity", "resource", c.cfg.Resource, "id", id)
	return nil
}

// Delete removes the entity stored under id.
// Returns ErrNotFound if there is none.
func (c *Controller[D, E, ID]) Delete(ctx context.Context, id ID) error {
	entity, err := c.find(ctx, id)
	if err != nil {
		return err
	}

	if err := c.store.Delete(ctx, entity); err != nil {
		return err
	}

	c.cfg.Logger.DebugContext(ctx, "deleted entity", "resource", c.cfg.Resource, "id", id)
	return nil
}

// List returns every stored object without relationships.
func (c *Controller[D, E, ID]) List(ctx context.Context) ([]D, error) {
	entities, err := c.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	objects := make([]D, 0, len(entities))
	for _, entity := range entities {
		object, err := c.hooks.ToDO(ctx, entity, false)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (c *Controller[D, E, ID]) find(ctx context.Context, id ID) (E, error) {
	entity, found, err := c.store.Find(ctx, id)
	if err != nil {
		return entity, err
	}
	if !found {
		return entity, fmt.Errorf("could not find %s with id %v: %w", c.cfg.Resource, id, ErrNotFound)
	}
	return entity, nil
}

func (c *Controller[D, E, ID]) validate(ctx context.Context, object D) error {
	if c.cfg.Validate == nil {
		return nil
	}
	if err := c.cfg.Validate.StructCtx(ctx, object); err != nil {
		return fromValidator(err)
	}
	return nil
}
