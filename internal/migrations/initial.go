package migrations

import (
	"database/sql"
)

// GetInitialMigrations returns the migrations creating the base schema.
// Natural keys carry UNIQUE constraints so concurrent creates cannot both succeed.
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_machines_and_ssh_keys",
			Up: func(tx *sql.Tx) error {
				return execAll(tx,
					`CREATE TABLE machines (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL UNIQUE,
						hostname TEXT NOT NULL,
						ipv4 TEXT NOT NULL UNIQUE,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE ssh_keys (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						machine_id INTEGER NOT NULL,
						key_text TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (machine_id, key_text),
						FOREIGN KEY (machine_id) REFERENCES machines(id) ON DELETE CASCADE
					)`,
				)
			},
			Down: func(tx *sql.Tx) error {
				// Drop tables in reverse order due to foreign key constraints
				return execAll(tx,
					`DROP TABLE IF EXISTS ssh_keys`,
					`DROP TABLE IF EXISTS machines`,
				)
			},
		},
		{
			Version: 2,
			Name:    "create_networks_and_dhcp_ranges",
			Up: func(tx *sql.Tx) error {
				return execAll(tx,
					`CREATE TABLE networks (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL UNIQUE,
						bridge TEXT NOT NULL,
						subnet TEXT NOT NULL,
						gateway TEXT NOT NULL DEFAULT '',
						dns_servers TEXT NOT NULL DEFAULT '',
						description TEXT NOT NULL DEFAULT '',
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE dhcp_ranges (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						network_id INTEGER NOT NULL,
						start_ip TEXT NOT NULL,
						end_ip TEXT NOT NULL,
						lease_time TEXT NOT NULL DEFAULT '12h',
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (network_id, start_ip),
						FOREIGN KEY (network_id) REFERENCES networks(id) ON DELETE CASCADE
					)`,
				)
			},
			Down: func(tx *sql.Tx) error {
				return execAll(tx,
					`DROP TABLE IF EXISTS dhcp_ranges`,
					`DROP TABLE IF EXISTS networks`,
				)
			},
		},
	}
}

func execAll(tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
