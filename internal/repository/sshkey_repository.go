package repository

import (
	"context"
	"database/sql"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

// SSHKeyRepository defines domain-specific operations for SSH keys
type SSHKeyRepository interface {
	Repository[domain.SSHKey, int64]
	FindByMachineID(ctx context.Context, machineID int64) ([]domain.SSHKey, error)
}

type sshKeyRepositoryImpl struct {
	*sqlRepository[domain.SSHKey]
}

// NewSSHKeyRepository creates a new SSH key repository
func NewSSHKeyRepository(db *sql.DB) SSHKeyRepository {
	return &sshKeyRepositoryImpl{
		sqlRepository: newSQLRepository(db, table[domain.SSHKey]{
			name:    "ssh_keys",
			columns: []string{"machine_id", "key_text"},
			scan: func(row scanner) (domain.SSHKey, error) {
				var k domain.SSHKey
				err := row.Scan(&k.ID, &k.MachineID, &k.KeyText)
				return k, err
			},
			values: func(k domain.SSHKey) []any {
				return []any{k.MachineID, k.KeyText}
			},
			key: func(k domain.SSHKey) int64 { return k.ID },
			withKey: func(k domain.SSHKey, id int64) domain.SSHKey {
				k.ID = id
				return k
			},
		}),
	}
}

// FindByMachineID returns all SSH keys for a given machine, ordered by id
func (r *sshKeyRepositoryImpl) FindByMachineID(ctx context.Context, machineID int64) ([]domain.SSHKey, error) {
	return r.FindBy(ctx, "machine_id", machineID)
}
