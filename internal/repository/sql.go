package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
)

type scanner interface {
	Scan(dest ...any) error
}

// table describes how one entity type maps onto its SQL table.
type table[T any] struct {
	name    string
	columns []string // non-key columns, in the order values returns them
	scan    func(row scanner) (T, error)
	values  func(entity T) []any
	key     func(entity T) int64
	withKey func(entity T, id int64) T
}

// sqlRepository implements Repository[T, int64] for a single table.
type sqlRepository[T any] struct {
	db    *sql.DB
	stmts *PreparedStatementCache
	table table[T]

	selectAll string
}

func newSQLRepository[T any](db *sql.DB, t table[T]) *sqlRepository[T] {
	return &sqlRepository[T]{
		db:        db,
		stmts:     NewPreparedStatementCache(db),
		table:     t,
		selectAll: fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name),
	}
}

// Create inserts entity and returns it with its assigned ID
func (r *sqlRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.table.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table.name, strings.Join(r.table.columns, ", "), placeholders)

	res, err := r.exec(ctx, query, r.table.values(entity)...)
	if err != nil {
		return zero, translate("failed to create "+r.table.name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return r.table.withKey(entity, id), nil
}

// Find retrieves an entity by its ID
func (r *sqlRepository[T]) Find(ctx context.Context, id int64) (T, bool, error) {
	entity, err := r.queryOne(ctx, r.selectAll+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return entity, false, nil
	}
	if err != nil {
		return entity, false, fmt.Errorf("failed to find %s: %w", r.table.name, err)
	}
	return entity, true, nil
}

// FindAll retrieves all entities ordered by ID
func (r *sqlRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	entities, err := r.queryMany(ctx, r.selectAll+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table.name, err)
	}
	return entities, nil
}

// FindBy retrieves the entities whose column equals value. Only the table's
// own columns may be queried.
func (r *sqlRepository[T]) FindBy(ctx context.Context, field string, value any) ([]T, error) {
	if !r.hasColumn(field) {
		return nil, fmt.Errorf("find %s by %q: %w", r.table.name, field, ErrOperationNotSupported)
	}

	entities, err := r.queryMany(ctx, r.selectAll+" WHERE "+field+" = ? ORDER BY id ASC", value)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by %s: %w", r.table.name, field, err)
	}
	return entities, nil
}

// Update overwrites the stored columns of entity
func (r *sqlRepository[T]) Update(ctx context.Context, entity T) error {
	assignments := make([]string, len(r.table.columns))
	for i, column := range r.table.columns {
		assignments[i] = column + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.table.name, strings.Join(assignments, ", "))

	args := append(r.table.values(entity), r.table.key(entity))
	res, err := r.exec(ctx, query, args...)
	if err != nil {
		return translate("failed to update "+r.table.name, err)
	}
	return r.expectRow(res, r.table.key(entity))
}

// Delete removes entity
func (r *sqlRepository[T]) Delete(ctx context.Context, entity T) error {
	return r.DeleteByID(ctx, r.table.key(entity))
}

// DeleteByID removes an entity by its ID
func (r *sqlRepository[T]) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.exec(ctx, "DELETE FROM "+r.table.name+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.table.name, err)
	}
	return r.expectRow(res, id)
}

// ExistsByID checks if an entity exists by its ID
func (r *sqlRepository[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	stmt, err := r.stmts.Get(ctx, "SELECT EXISTS(SELECT 1 FROM "+r.table.name+" WHERE id = ?)")
	if err != nil {
		return false, err
	}
	if err := stmt.QueryRowContext(ctx, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.table.name, err)
	}
	return exists, nil
}

// PrimaryKey returns the entity's ID
func (r *sqlRepository[T]) PrimaryKey(entity T) int64 {
	return r.table.key(entity)
}

// ParsePrimaryKey parses an ID from a URL path segment
func (r *sqlRepository[T]) ParsePrimaryKey(raw string) (int64, error) {
	return crud.ParseInt64(raw)
}

// Close releases the cached prepared statements
func (r *sqlRepository[T]) Close() error {
	return r.stmts.Close()
}

func (r *sqlRepository[T]) hasColumn(field string) bool {
	if field == "id" {
		return true
	}
	for _, column := range r.table.columns {
		if column == field {
			return true
		}
	}
	return false
}

func (r *sqlRepository[T]) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	stmt, err := r.stmts.Get(ctx, query)
	if err != nil {
		return nil, err
	}
	return stmt.ExecContext(ctx, args...)
}

func (r *sqlRepository[T]) queryOne(ctx context.Context, query string, args ...any) (T, error) {
	var zero T
	stmt, err := r.stmts.Get(ctx, query)
	if err != nil {
		return zero, err
	}
	return r.table.scan(stmt.QueryRowContext(ctx, args...))
}

func (r *sqlRepository[T]) queryMany(ctx context.Context, query string, args ...any) ([]T, error) {
	stmt, err := r.stmts.Get(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "table", r.table.name, "error", err)
		}
	}()

	entities := []T{}
	for rows.Next() {
		entity, err := r.table.scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (r *sqlRepository[T]) expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s with ID %d: %w", r.table.name, id, ErrNotFound)
	}
	return nil
}

// findOne narrows a natural-key lookup to a single entity.
func findOne[T any](entities []T, err error, what string) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if len(entities) == 0 {
		return zero, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return entities[0], nil
}
