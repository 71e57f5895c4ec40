package resources

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"github.com/jbweber/homelab/cornerstone/internal/domain"
	"github.com/jbweber/homelab/cornerstone/internal/gormstore"
	"github.com/jbweber/homelab/cornerstone/internal/repository"
)

// Stores bundles the persistence collaborator of every resource.
type Stores struct {
	Machines   crud.Persistence[domain.Machine, int64]
	SSHKeys    crud.Persistence[domain.SSHKey, int64]
	Networks   crud.Persistence[domain.Network, int64]
	DHCPRanges crud.Persistence[domain.DHCPRange, int64]
}

// SQLStores builds hand-written SQL repositories over a migrated SQLite database.
func SQLStores(db *sql.DB) Stores {
	return Stores{
		Machines:   repository.NewMachineRepository(db),
		SSHKeys:    repository.NewSSHKeyRepository(db),
		Networks:   repository.NewNetworkRepository(db),
		DHCPRanges: repository.NewDHCPRangeRepository(db),
	}
}

// GormStores builds gorm-backed stores.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Machines:   gormstore.New[domain.Machine](db, crud.ParseInt64),
		SSHKeys:    gormstore.New[domain.SSHKey](db, crud.ParseInt64),
		Networks:   gormstore.New[domain.Network](db, crud.ParseInt64),
		DHCPRanges: gormstore.New[domain.DHCPRange](db, crud.ParseInt64),
	}
}
