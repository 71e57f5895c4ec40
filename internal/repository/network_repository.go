package repository

import (
	"context"
	"database/sql"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

// NetworkRepository defines domain-specific operations for networks
type NetworkRepository interface {
	Repository[domain.Network, int64]
	FindByName(ctx context.Context, name string) (domain.Network, error)
	FindByBridge(ctx context.Context, bridge string) ([]domain.Network, error)
}

type networkRepositoryImpl struct {
	*sqlRepository[domain.Network]
}

// NewNetworkRepository creates a new network repository
func NewNetworkRepository(db *sql.DB) NetworkRepository {
	return &networkRepositoryImpl{
		sqlRepository: newSQLRepository(db, table[domain.Network]{
			name:    "networks",
			columns: []string{"name", "bridge", "subnet", "gateway", "dns_servers", "description"},
			scan: func(row scanner) (domain.Network, error) {
				var n domain.Network
				err := row.Scan(&n.ID, &n.Name, &n.Bridge, &n.Subnet, &n.Gateway, &n.DNSServers, &n.Description)
				return n, err
			},
			values: func(n domain.Network) []any {
				return []any{n.Name, n.Bridge, n.Subnet, n.Gateway, n.DNSServers, n.Description}
			},
			key: func(n domain.Network) int64 { return n.ID },
			withKey: func(n domain.Network, id int64) domain.Network {
				n.ID = id
				return n
			},
		}),
	}
}

// FindByName retrieves a network by its name
func (r *networkRepositoryImpl) FindByName(ctx context.Context, name string) (domain.Network, error) {
	networks, err := r.FindBy(ctx, "name", name)
	return findOne(networks, err, "network with name "+name)
}

// FindByBridge retrieves the networks attached to a bridge interface
func (r *networkRepositoryImpl) FindByBridge(ctx context.Context, bridge string) ([]domain.Network, error) {
	return r.FindBy(ctx, "bridge", bridge)
}
