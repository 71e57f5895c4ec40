package resources

import (
	"context"
	"strings"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"github.com/jbweber/homelab/cornerstone/internal/domain"
)

type lookup struct {
	field string
	value any
}

// findByAny runs one lookup per natural key and merges the results.
func findByAny[E any](ctx context.Context, store crud.Persistence[E, int64], lookups ...lookup) ([]E, error) {
	seen := map[int64]bool{}
	var matches []E
	for _, l := range lookups {
		found, err := store.FindBy(ctx, l.field, l.value)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if id := store.PrimaryKey(e); !seen[id] {
				seen[id] = true
				matches = append(matches, e)
			}
		}
	}
	return matches, nil
}

// MachineHooks maps machines between their API and storage shapes.
func MachineHooks(s Stores) crud.Hooks[Machine, domain.Machine] {
	return crud.Hooks[Machine, domain.Machine]{
		FindExisting: func(ctx context.Context, m Machine) ([]domain.Machine, error) {
			return findByAny(ctx, s.Machines, lookup{"name", m.Name}, lookup{"ipv4", m.IPv4})
		},
		ToDO: func(ctx context.Context, e domain.Machine, withRelationships bool) (Machine, error) {
			m := Machine{ID: e.ID, Name: e.Name, Hostname: e.Hostname, IPv4: e.IPv4}
			if !withRelationships {
				return m, nil
			}

			keys, err := s.SSHKeys.FindBy(ctx, "machine_id", e.ID)
			if err != nil {
				return Machine{}, err
			}
			for _, k := range keys {
				m.SSHKeys = append(m.SSHKeys, sshKeyToDO(k))
			}
			return m, nil
		},
		ToEntity: func(m Machine) domain.Machine {
			return domain.Machine{ID: m.ID, Name: m.Name, Hostname: m.Hostname, IPv4: m.IPv4}
		},
		ApplyToEntity: func(m Machine, e domain.Machine) domain.Machine {
			e.Name = m.Name
			e.Hostname = m.Hostname
			e.IPv4 = m.IPv4
			return e
		},
	}
}

func sshKeyToDO(k domain.SSHKey) SSHKey {
	return SSHKey{ID: k.ID, MachineID: k.MachineID, KeyText: k.KeyText}
}

// SSHKeyHooks maps SSH keys between their API and storage shapes.
func SSHKeyHooks(s Stores) crud.Hooks[SSHKey, domain.SSHKey] {
	return crud.Hooks[SSHKey, domain.SSHKey]{
		FindExisting: func(ctx context.Context, k SSHKey) ([]domain.SSHKey, error) {
			keys, err := s.SSHKeys.FindBy(ctx, "machine_id", k.MachineID)
			if err != nil {
				return nil, err
			}
			var matches []domain.SSHKey
			for _, existing := range keys {
				if existing.KeyText == k.KeyText {
					matches = append(matches, existing)
				}
			}
			return matches, nil
		},
		ToDO: func(_ context.Context, e domain.SSHKey, _ bool) (SSHKey, error) {
			return sshKeyToDO(e), nil
		},
		ToEntity: func(k SSHKey) domain.SSHKey {
			return domain.SSHKey{ID: k.ID, MachineID: k.MachineID, KeyText: k.KeyText}
		},
		ApplyToEntity: func(k SSHKey, e domain.SSHKey) domain.SSHKey {
			e.MachineID = k.MachineID
			e.KeyText = k.KeyText
			return e
		},
	}
}

// DNS servers are stored as one comma-separated column.
func joinDNS(servers []string) string {
	return strings.Join(servers, ",")
}

func splitDNS(column string) []string {
	var servers []string
	for _, s := range strings.Split(column, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

// NetworkHooks maps networks and their DHCP ranges between API and storage shapes.
func NetworkHooks(s Stores) crud.Hooks[Network, domain.Network] {
	return crud.Hooks[Network, domain.Network]{
		FindExisting: func(ctx context.Context, n Network) ([]domain.Network, error) {
			return s.Networks.FindBy(ctx, "name", n.Name)
		},
		ToDO: func(ctx context.Context, e domain.Network, withRelationships bool) (Network, error) {
			n := Network{
				ID:          e.ID,
				Name:        e.Name,
				Bridge:      e.Bridge,
				Subnet:      e.Subnet,
				Gateway:     e.Gateway,
				DNSServers:  splitDNS(e.DNSServers),
				Description: e.Description,
			}
			if !withRelationships {
				return n, nil
			}

			ranges, err := s.DHCPRanges.FindBy(ctx, "network_id", e.ID)
			if err != nil {
				return Network{}, err
			}
			for _, r := range ranges {
				n.DHCPRanges = append(n.DHCPRanges, dhcpRangeToDO(r))
			}
			return n, nil
		},
		ToEntity: func(n Network) domain.Network {
			return domain.Network{
				ID:          n.ID,
				Name:        n.Name,
				Bridge:      n.Bridge,
				Subnet:      n.Subnet,
				Gateway:     n.Gateway,
				DNSServers:  joinDNS(n.DNSServers),
				Description: n.Description,
			}
		},
		ApplyToEntity: func(n Network, e domain.Network) domain.Network {
			e.Name = n.Name
			e.Bridge = n.Bridge
			e.Subnet = n.Subnet
			e.Gateway = n.Gateway
			e.DNSServers = joinDNS(n.DNSServers)
			e.Description = n.Description
			return e
		},
	}
}

func dhcpRangeToDO(r domain.DHCPRange) DHCPRange {
	return DHCPRange{ID: r.ID, NetworkID: r.NetworkID, StartIP: r.StartIP, EndIP: r.EndIP, LeaseTime: r.LeaseTime}
}

func leaseTime(raw string) string {
	if raw == "" {
		return DefaultLeaseTime
	}
	return raw
}

// DHCPRangeHooks maps DHCP ranges between their API and storage shapes.
func DHCPRangeHooks(s Stores) crud.Hooks[DHCPRange, domain.DHCPRange] {
	return crud.Hooks[DHCPRange, domain.DHCPRange]{
		FindExisting: func(ctx context.Context, r DHCPRange) ([]domain.DHCPRange, error) {
			ranges, err := s.DHCPRanges.FindBy(ctx, "network_id", r.NetworkID)
			if err != nil {
				return nil, err
			}
			var matches []domain.DHCPRange
			for _, existing := range ranges {
				if existing.StartIP == r.StartIP {
					matches = append(matches, existing)
				}
			}
			return matches, nil
		},
		ToDO: func(_ context.Context, e domain.DHCPRange, _ bool) (DHCPRange, error) {
			return dhcpRangeToDO(e), nil
		},
		ToEntity: func(r DHCPRange) domain.DHCPRange {
			return domain.DHCPRange{
				ID:        r.ID,
				NetworkID: r.NetworkID,
				StartIP:   r.StartIP,
				EndIP:     r.EndIP,
				LeaseTime: leaseTime(r.LeaseTime),
			}
		},
		ApplyToEntity: func(r DHCPRange, e domain.DHCPRange) domain.DHCPRange {
			e.NetworkID = r.NetworkID
			e.StartIP = r.StartIP
			e.EndIP = r.EndIP
			e.LeaseTime = leaseTime(r.LeaseTime)
			return e
		},
	}
}
