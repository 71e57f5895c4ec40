package repository

import (
	"context"
	"database/sql"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

// DHCPRangeRepository defines domain-specific operations for DHCP ranges
type DHCPRangeRepository interface {
	Repository[domain.DHCPRange, int64]
	FindByNetworkID(ctx context.Context, networkID int64) ([]domain.DHCPRange, error)
}

type dhcpRangeRepositoryImpl struct {
	*sqlRepository[domain.DHCPRange]
}

// NewDHCPRangeRepository creates a new DHCP range repository
func NewDHCPRangeRepository(db *sql.DB) DHCPRangeRepository {
	return &dhcpRangeRepositoryImpl{
		sqlRepository: newSQLRepository(db, table[domain.DHCPRange]{
			name:    "dhcp_ranges",
			columns: []string{"network_id", "start_ip", "end_ip", "lease_time"},
			scan: func(row scanner) (domain.DHCPRange, error) {
				var d domain.DHCPRange
				err := row.Scan(&d.ID, &d.NetworkID, &d.StartIP, &d.EndIP, &d.LeaseTime)
				return d, err
			},
			values: func(d domain.DHCPRange) []any {
				return []any{d.NetworkID, d.StartIP, d.EndIP, d.LeaseTime}
			},
			key: func(d domain.DHCPRange) int64 { return d.ID },
			withKey: func(d domain.DHCPRange, id int64) domain.DHCPRange {
				d.ID = id
				return d
			},
		}),
	}
}

// FindByNetworkID retrieves all DHCP ranges for a network, ordered by id
func (r *dhcpRangeRepositoryImpl) FindByNetworkID(ctx context.Context, networkID int64) ([]domain.DHCPRange, error) {
	return r.FindBy(ctx, "network_id", networkID)
}
