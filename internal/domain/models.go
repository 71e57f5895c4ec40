package domain

// Machine represents a virtual machine in the system
type Machine struct {
	ID       int64    `gorm:"column:id;primaryKey"`                             // Unique identifier
	Name     string   `gorm:"column:name;not null;uniqueIndex"`                 // Machine name
	Hostname string   `gorm:"column:hostname;not null"`                         // Hostname for NoCloud metadata
	IPv4     string   `gorm:"column:ipv4;not null;uniqueIndex"`                 // Static IPv4 address
	SSHKeys  []SSHKey `gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE"` // Only used for schema generation
}

func (Machine) TableName() string { return "machines" }

func (m Machine) GetID() int64 { return m.ID }

// SSHKey represents an SSH public key associated with a machine
type SSHKey struct {
	ID        int64  `gorm:"column:id;primaryKey"`                                            // Unique identifier
	MachineID int64  `gorm:"column:machine_id;not null;uniqueIndex:idx_ssh_keys_machine_key"` // Foreign key to Machine
	KeyText   string `gorm:"column:key_text;not null;uniqueIndex:idx_ssh_keys_machine_key"`   // Public SSH key text
}

func (SSHKey) TableName() string { return "ssh_keys" }

func (k SSHKey) GetID() int64 { return k.ID }

// Network represents a network configuration on a hypervisor
type Network struct {
	ID          int64       `gorm:"column:id;primaryKey"`                             // Unique identifier
	Name        string      `gorm:"column:name;not null;uniqueIndex"`                 // Network name (e.g., "br0", "internal")
	Bridge      string      `gorm:"column:bridge;not null"`                           // Bridge interface name (e.g., "br0")
	Subnet      string      `gorm:"column:subnet;not null"`                           // Subnet in CIDR notation (e.g., "192.168.1.0/24")
	Gateway     string      `gorm:"column:gateway"`                                   // Gateway IP address
	DNSServers  string      `gorm:"column:dns_servers"`                               // Comma-separated DNS server IPs
	Description string      `gorm:"column:description"`                               // Optional description
	DHCPRanges  []DHCPRange `gorm:"foreignKey:NetworkID;constraint:OnDelete:CASCADE"` // Only used for schema generation
}

func (Network) TableName() string { return "networks" }

func (n Network) GetID() int64 { return n.ID }

// DHCPRange represents a DHCP range within a network
type DHCPRange struct {
	ID        int64  `gorm:"column:id;primaryKey"`                                         // Unique identifier
	NetworkID int64  `gorm:"column:network_id;not null;uniqueIndex:idx_dhcp_ranges_start"` // Foreign key to Network
	StartIP   string `gorm:"column:start_ip;not null;uniqueIndex:idx_dhcp_ranges_start"`   // Start of DHCP range
	EndIP     string `gorm:"column:end_ip;not null"`                                       // End of DHCP range
	LeaseTime string `gorm:"column:lease_time"`                                            // DHCP lease time (e.g., "12h", "24h")
}

func (DHCPRange) TableName() string { return "dhcp_ranges" }

func (d DHCPRange) GetID() int64 { return d.ID }

// Models lists every persisted type, in dependency order.
func Models() []any {
	return []any{&Machine{}, &SSHKey{}, &Network{}, &DHCPRange{}}
}
