package resources

import (
	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

// Controllers holds one crud controller per resource.
type Controllers struct {
	Machines   *crud.Controller[Machine, domain.Machine, int64]
	SSHKeys    *crud.Controller[SSHKey, domain.SSHKey, int64]
	Networks   *crud.Controller[Network, domain.Network, int64]
	DHCPRanges *crud.Controller[DHCPRange, domain.DHCPRange, int64]
}

// NewControllers wires s into controllers sharing base; only Resource differs.
func NewControllers(s Stores, base crud.Config) Controllers {
	named := func(resource string) crud.Config {
		cfg := base
		cfg.Resource = resource
		return cfg
	}

	return Controllers{
		Machines:   crud.NewController(s.Machines, MachineHooks(s), named("machine")),
		SSHKeys:    crud.NewController(s.SSHKeys, SSHKeyHooks(s), named("ssh key")),
		Networks:   crud.NewController(s.Networks, NetworkHooks(s), named("network")),
		DHCPRanges: crud.NewController(s.DHCPRanges, DHCPRangeHooks(s), named("dhcp range")),
	}
}
