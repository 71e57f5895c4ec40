package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
	"github.com/jbweber/homelab/cornerstone/internal/testutil"
)

func createNetwork(t *testing.T, repo NetworkRepository, name, bridge string) domain.Network {
	t.Helper()
	created, err := repo.Create(context.Background(), domain.Network{
		Name:        name,
		Bridge:      bridge,
		Subnet:      "192.168.1.0/24",
		Gateway:     "192.168.1.1",
		DNSServers:  "8.8.8.8,8.8.4.4",
		Description: "Test network",
	})
	require.NoError(t, err)
	return created
}

func TestNetworkRepository_CreateAndFind(t *testing.T) {
	repo := NewNetworkRepository(testutil.SetupTestDBWithMigrations(t))
	ctx := context.Background()

	created := createNetwork(t, repo, "test-network", "br0")
	assert.NotZero(t, created.ID)

	found, ok, err := repo.Find(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, found)
}

func TestNetworkRepository_FindByName(t *testing.T) {
	repo := NewNetworkRepository(testutil.SetupTestDBWithMigrations(t))
	ctx := context.Background()
	created := createNetwork(t, repo, "test-network", "br0")

	found, err := repo.FindByName(ctx, "test-network")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNetworkRepository_FindByBridge(t *testing.T) {
	repo := NewNetworkRepository(testutil.SetupTestDBWithMigrations(t))
	ctx := context.Background()
	a := createNetwork(t, repo, "net-a", "br0")
	b := createNetwork(t, repo, "net-b", "br0")
	createNetwork(t, repo, "net-c", "br1")

	found, err := repo.FindByBridge(ctx, "br0")
	require.NoError(t, err)
	assert.Equal(t, []domain.Network{a, b}, found)
}

func TestNetworkRepository_Create_Duplicate(t *testing.T) {
	repo := NewNetworkRepository(testutil.SetupTestDBWithMigrations(t))
	createNetwork(t, repo, "test-network", "br0")

	_, err := repo.Create(context.Background(), domain.Network{Name: "test-network", Bridge: "br1", Subnet: "10.0.0.0/8"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestNetworkRepository_UpdateAndDelete(t *testing.T) {
	repo := NewNetworkRepository(testutil.SetupTestDBWithMigrations(t))
	ctx := context.Background()
	created := createNetwork(t, repo, "test-network", "br0")

	created.Description = "Updated test network"
	require.NoError(t, repo.Update(ctx, created))

	found, _, err := repo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated test network", found.Description)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	_, ok, err := repo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
