package repository

import (
	"context"
	"database/sql"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

// MachineRepository defines domain-specific operations for machines
type MachineRepository interface {
	Repository[domain.Machine, int64]
	FindByName(ctx context.Context, name string) (domain.Machine, error)
	FindByIPv4(ctx context.Context, ipv4 string) (domain.Machine, error)
}

type machineRepositoryImpl struct {
	*sqlRepository[domain.Machine]
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *sql.DB) MachineRepository {
	return &machineRepositoryImpl{
		sqlRepository: newSQLRepository(db, table[domain.Machine]{
			name:    "machines",
			columns: []string{"name", "hostname", "ipv4"},
			scan: func(row scanner) (domain.Machine, error) {
				var m domain.Machine
				err := row.Scan(&m.ID, &m.Name, &m.Hostname, &m.IPv4)
				return m, err
			},
			values: func(m domain.Machine) []any {
				return []any{m.Name, m.Hostname, m.IPv4}
			},
			key: func(m domain.Machine) int64 { return m.ID },
			withKey: func(m domain.Machine, id int64) domain.Machine {
				m.ID = id
				return m
			},
		}),
	}
}

// FindByName retrieves a machine by its name
func (r *machineRepositoryImpl) FindByName(ctx context.Context, name string) (domain.Machine, error) {
	machines, err := r.FindBy(ctx, "name", name)
	return findOne(machines, err, "machine with name "+name)
}

// FindByIPv4 retrieves a machine by its IPv4 address
func (r *machineRepositoryImpl) FindByIPv4(ctx context.Context, ipv4 string) (domain.Machine, error) {
	machines, err := r.FindBy(ctx, "ipv4", ipv4)
	return findOne(machines, err, "machine with IPv4 "+ipv4)
}
