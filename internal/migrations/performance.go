package migrations

import (
	"database/sql"
)

// GetPerformanceMigrations returns performance optimization migrations
func GetPerformanceMigrations() []Migration {
	return []Migration{
		{
			Version: 10,
			Name:    "add_performance_indices",
			Up: func(tx *sql.Tx) error {
				return execAll(tx,
					"CREATE INDEX IF NOT EXISTS idx_ssh_keys_machine_id ON ssh_keys(machine_id)",
					"CREATE INDEX IF NOT EXISTS idx_networks_bridge ON networks(bridge)",
					"CREATE INDEX IF NOT EXISTS idx_dhcp_ranges_network_id ON dhcp_ranges(network_id)",
				)
			},
			Down: func(tx *sql.Tx) error {
				return execAll(tx,
					"DROP INDEX IF EXISTS idx_ssh_keys_machine_id",
					"DROP INDEX IF EXISTS idx_networks_bridge",
					"DROP INDEX IF EXISTS idx_dhcp_ranges_network_id",
				)
			},
		},
	}
}
