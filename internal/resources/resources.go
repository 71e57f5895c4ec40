// Package resources binds the domain models to crud controllers: the data
// objects served over HTTP, their conversion hooks and their storage.
package resources

// Machine is the wire form of a virtual machine.
type Machine struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name" validate:"required,max=64"`
	Hostname string   `json:"hostname" validate:"required,hostname_rfc1123"`
	IPv4     string   `json:"ipv4" validate:"required,ipv4"`
	SSHKeys  []SSHKey `json:"ssh_keys,omitempty" validate:"-"`
}

// SSHKey is the wire form of a public key authorized on a machine.
type SSHKey struct {
	ID        int64  `json:"id"`
	MachineID int64  `json:"machine_id" validate:"required,gt=0"`
	KeyText   string `json:"key_text" validate:"required"`
}

// Network is the wire form of a hypervisor network.
type Network struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" validate:"required,max=64"`
	Bridge      string      `json:"bridge" validate:"required"`
	Subnet      string      `json:"subnet" validate:"required,cidrv4"`
	Gateway     string      `json:"gateway,omitempty" validate:"omitempty,ipv4"`
	DNSServers  []string    `json:"dns_servers,omitempty" validate:"dive,ip"`
	Description string      `json:"description,omitempty"`
	DHCPRanges  []DHCPRange `json:"dhcp_ranges,omitempty" validate:"-"`
}

// DHCPRange is the wire form of an address pool within a network.
type DHCPRange struct {
	ID        int64  `json:"id"`
	NetworkID int64  `json:"network_id" validate:"required,gt=0"`
	StartIP   string `json:"start_ip" validate:"required,ipv4"`
	EndIP     string `json:"end_ip" validate:"required,ipv4"`
	LeaseTime string `json:"lease_time,omitempty"`
}

// DefaultLeaseTime applies to DHCP ranges created without one.
const DefaultLeaseTime = "12h"
