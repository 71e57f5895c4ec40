// Package gormstore implements crud.Persistence on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
)

// ErrUnknownField is returned by FindBy for a field the model does not map.
var ErrUnknownField = errors.New("unknown field")

// Keyed is implemented by models exposing their primary key.
type Keyed[ID comparable] interface {
	GetID() ID
}

// Store persists one model type. The *gorm.DB should be opened with
// TranslateError so constraint failures surface as crud sentinels.
type Store[E Keyed[ID], ID comparable] struct {
	db    *gorm.DB
	parse func(raw string) (ID, error)
}

// New creates a Store using parse to convert raw keys.
func New[E Keyed[ID], ID comparable](db *gorm.DB, parse func(raw string) (ID, error)) *Store[E, ID] {
	return &Store[E, ID]{db: db, parse: parse}
}

// Create ignores any key already set on an auto-increment model.
func (s *Store[E, ID]) Create(ctx context.Context, entity E) (E, error) {
	if err := s.resetKey(ctx, &entity); err != nil {
		return entity, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&entity).Error; err != nil {
		return entity, translate("create", err)
	}
	return entity, nil
}

// Find retrieves an entity by its primary key
func (s *Store[E, ID]) Find(ctx context.Context, id ID) (E, bool, error) {
	var entity E
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity, false, nil
	}
	if err != nil {
		return entity, false, err
	}
	return entity, true, nil
}

// FindAll retrieves all entities ordered by primary key
func (s *Store[E, ID]) FindAll(ctx context.Context) ([]E, error) {
	entities := []E{}
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Find(&entities).Error
	return entities, err
}

// FindBy accepts either a struct field name or its column name.
func (s *Store[E, ID]) FindBy(ctx context.Context, field string, value any) ([]E, error) {
	column, err := s.column(field)
	if err != nil {
		return nil, err
	}

	entities := []E{}
	err = s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Find(&entities).Error
	return entities, err
}

// Update writes every column of entity, zero values included.
func (s *Store[E, ID]) Update(ctx context.Context, entity E) error {
	res := s.db.WithContext(ctx).Model(&entity).Select("*").Omit(clause.Associations).Updates(&entity)
	if res.Error != nil {
		return translate("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %v: %w", entity.GetID(), crud.ErrNotFound)
	}
	return nil
}

// Delete removes an entity
func (s *Store[E, ID]) Delete(ctx context.Context, entity E) error {
	res := s.db.WithContext(ctx).Delete(&entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %v: %w", entity.GetID(), crud.ErrNotFound)
	}
	return nil
}

// PrimaryKey returns the entity's ID
func (s *Store[E, ID]) PrimaryKey(entity E) ID {
	return entity.GetID()
}

// ParsePrimaryKey converts a raw path segment into an ID
func (s *Store[E, ID]) ParsePrimaryKey(raw string) (ID, error) {
	return s.parse(raw)
}

func (s *Store[E, ID]) column(field string) (string, error) {
	var model E
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(&model); err != nil {
		return "", err
	}

	f := stmt.Schema.LookUpField(field)
	if f == nil || f.DBName == "" {
		return "", fmt.Errorf("%s has no field %q: %w", stmt.Schema.Table, field, ErrUnknownField)
	}
	return f.DBName, nil
}

func (s *Store[E, ID]) resetKey(ctx context.Context, entity *E) error {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(entity); err != nil {
		return err
	}

	pk := stmt.Schema.PrioritizedPrimaryField
	if pk == nil || !pk.AutoIncrement {
		return nil
	}
	return pk.Set(ctx, reflect.ValueOf(entity).Elem(), reflect.Zero(pk.FieldType).Interface())
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, crud.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %w", op, crud.ErrInvalidEntity, err)
	}
	return err
}

// AutoMigrate creates or updates the tables of models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}
