package crud

import "context"

// Persistence is the storage collaborator a Controller delegates to.
// Implementations own transactions, key generation and entity lifecycle.
type Persistence[E any, ID comparable] interface {
	// Create stores a new entity and returns it carrying its assigned key
	Create(ctx context.Context, entity E) (E, error)

	// Find looks an entity up by primary key; found is false when it does not exist
	Find(ctx context.Context, id ID) (entity E, found bool, err error)

	// FindAll returns every stored entity
	FindAll(ctx context.Context) ([]E, error)

	// FindBy returns the entities whose field equals value
	FindBy(ctx context.Context, field string, value any) ([]E, error)

	// Update persists the fields of an existing entity
	Update(ctx context.Context, entity E) error

	// Delete removes an existing entity
	Delete(ctx context.Context, entity E) error

	// PrimaryKey returns the key embedded in entity
	PrimaryKey(entity E) ID

	// ParsePrimaryKey converts a raw key, e.g. a URL path segment, to the key type
	ParsePrimaryKey(raw string) (ID, error)
}

// Hooks converts between a data object D and an entity E.
type Hooks[D any, E any] struct {
	// FindExisting returns entities sharing object's natural key
	FindExisting func(ctx context.Context, object D) ([]E, error)

	// ToDO converts an entity, adding one-to-many relationships when withRelationships is set
	ToDO func(ctx context.Context, entity E, withRelationships bool) (D, error)

	// ToEntity builds a new entity from object
	ToEntity func(object D) E

	// ApplyToEntity overwrites entity's fields with object's and returns it
	ApplyToEntity func(object D, entity E) E
}

func (h Hooks[D, E]) check() {
	switch {
	case h.FindExisting == nil:
		panic("crud: FindExisting hook is required")
	case h.ToDO == nil:
		panic("crud: ToDO hook is required")
	case h.ToEntity == nil:
		panic("crud: ToEntity hook is required")
	case h.ApplyToEntity == nil:
		panic("crud: ApplyToEntity hook is required")
	}
}
