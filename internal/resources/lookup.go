package resources

import (
	"context"
	"fmt"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
)

// FindMachine returns the machine whose name or ipv4 equals value,
// SSH keys included.
func FindMachine(ctx context.Context, s Stores, field, value string) (Machine, error) {
	if field != "name" && field != "ipv4" {
		return Machine{}, fmt.Errorf("machines cannot be looked up by %q", field)
	}

	found, err := s.Machines.FindBy(ctx, field, value)
	if err != nil {
		return Machine{}, err
	}
	if len(found) == 0 {
		return Machine{}, fmt.Errorf("could not find machine with %s %s: %w", field, value, crud.ErrNotFound)
	}
	return MachineHooks(s).ToDO(ctx, found[0], true)
}
