package crud

import (
	"context"
	"fmt"
	"sort"

	"github.com/stretchr/testify/mock"
)

type person struct {
	ID    int64
	Name  string
	Email string
}

type personDO struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email,omitempty" validate:"omitempty,email"`
	Groups []string `json:"groups,omitempty"`
}

// memoryStore is an in-memory Persistence for person entities.
type memoryStore struct {
	nextID  int64
	rows    map[int64]person
	creates int
	updates int
	deletes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, rows: map[int64]person{}}
}

func (s *memoryStore) Create(_ context.Context, p person) (person, error) {
	p.ID = s.nextID
	s.nextID++
	s.rows[p.ID] = p
	s.creates++
	return p, nil
}

func (s *memoryStore) Find(_ context.Context, id int64) (person, bool, error) {
	p, ok := s.rows[id]
	return p, ok, nil
}

func (s *memoryStore) FindAll(_ context.Context) ([]person, error) {
	all := make([]person, 0, len(s.rows))
	for _, p := range s.rows {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *memoryStore) FindBy(ctx context.Context, field string, value any) ([]person, error) {
	if field != "name" {
		return nil, fmt.Errorf("unsupported field %q", field)
	}
	all, _ := s.FindAll(ctx)
	var matches []person
	for _, p := range all {
		if p.Name == value {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *memoryStore) Update(_ context.Context, p person) error {
	if _, ok := s.rows[p.ID]; !ok {
		return fmt.Errorf("person %d vanished", p.ID)
	}
	s.rows[p.ID] = p
	s.updates++
	return nil
}

func (s *memoryStore) Delete(_ context.Context, p person) error {
	delete(s.rows, p.ID)
	s.deletes++
	return nil
}

func (s *memoryStore) PrimaryKey(p person) int64 {
	return p.ID
}

func (s *memoryStore) ParsePrimaryKey(raw string) (int64, error) {
	return ParseInt64(raw)
}

func personHooks(store Persistence[person, int64]) Hooks[personDO, person] {
	return Hooks[personDO, person]{
		FindExisting: func(ctx context.Context, o personDO) ([]person, error) {
			return store.FindBy(ctx, "name", o.Name)
		},
		ToDO: func(_ context.Context, p person, withRelationships bool) (personDO, error) {
			o := personDO{ID: p.ID, Name: p.Name, Email: p.Email}
			if withRelationships {
				o.Groups = []string{"staff"}
			}
			return o, nil
		},
		ToEntity: func(o personDO) person {
			return person{ID: o.ID, Name: o.Name, Email: o.Email}
		},
		ApplyToEntity: func(o personDO, p person) person {
			p.Name = o.Name
			p.Email = o.Email
			return p
		},
	}
}

// mockPersistence is a testify mock of Persistence[person, int64].
type mockPersistence struct {
	mock.Mock
}

func (m *mockPersistence) Create(ctx context.Context, p person) (person, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(person), args.Error(1)
}

func (m *mockPersistence) Find(ctx context.Context, id int64) (person, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(person), args.Bool(1), args.Error(2)
}

func (m *mockPersistence) FindAll(ctx context.Context) ([]person, error) {
	args := m.Called(ctx)
	return args.Get(0).([]person), args.Error(1)
}

func (m *mockPersistence) FindBy(ctx context.Context, field string, value any) ([]person, error) {
	args := m.Called(ctx, field, value)
	return args.Get(0).([]person), args.Error(1)
}

func (m *mockPersistence) Update(ctx context.Context, p person) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPersistence) Delete(ctx context.Context, p person) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPersistence) PrimaryKey(p person) int64 {
	return p.ID
}

func (m *mockPersistence) ParsePrimaryKey(raw string) (int64, error) {
	return ParseInt64(raw)
}
