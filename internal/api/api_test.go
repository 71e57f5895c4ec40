package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"github.com/jbweber/homelab/cornerstone/internal/resources"
	"github.com/jbweber/homelab/cornerstone/internal/testutil"
)

func setupTestAPI(t *testing.T) http.Handler {
	t.Helper()
	stores := resources.SQLStores(testutil.SetupTestDBWithMigrations(t))
	controllers := resources.NewControllers(stores, crud.Config{Validate: crud.NewValidator()})
	return New(stores, controllers, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	w := do(t, setupTestAPI(t), "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cornerstone web service is running!")
}

func TestMachines_Scenario(t *testing.T) {
	h := setupTestAPI(t)

	w := do(t, h, "POST", "/api/v0/machines", resources.Machine{Name: "alice", Hostname: "alice", IPv4: "10.0.0.7"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[CreatedResponse[int64]](t, w)
	path := "/api/v0/machines/" + strconv.FormatInt(created.ID, 10)
	assert.Equal(t, path, w.Header().Get("Location"))

	w = do(t, h, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[resources.Machine](t, w).Name)

	w = do(t, h, "PUT", path, resources.Machine{ID: created.ID, Name: "bob", Hostname: "bob", IPv4: "10.0.0.7"})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, h, "GET", path, nil)
	assert.Equal(t, "bob", decode[resources.Machine](t, w).Name)

	w = do(t, h, "PUT", path, resources.Machine{ID: 99, Name: "bob", Hostname: "bob", IPv4: "10.0.0.7"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[ErrorResponse](t, w)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "id", resp.Violations[0].Field)

	w = do(t, h, "DELETE", path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMachines_List(t *testing.T) {
	h := setupTestAPI(t)

	w := do(t, h, "GET", "/api/v0/machines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	for i, name := range []string{"alpha", "beta"} {
		w = do(t, h, "POST", "/api/v0/machines", resources.Machine{Name: name, Hostname: name, IPv4: "10.0.0." + strconv.Itoa(i+1)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = do(t, h, "GET", "/api/v0/machines", nil)
	list := decode[[]resources.Machine](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "beta", list[1].Name)
}

func TestMachines_Duplicate(t *testing.T) {
	h := setupTestAPI(t)
	machine := resources.Machine{Name: "alice", Hostname: "alice", IPv4: "10.0.0.7"}

	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/api/v0/machines", machine).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, "POST", "/api/v0/machines", machine).Code)
}

func TestMachines_BadRequests(t *testing.T) {
	h := setupTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"invalid id on get", "GET", "/api/v0/machines/invalid", nil},
		{"invalid id on delete", "DELETE", "/api/v0/machines/invalid", nil},
		{"invalid json on post", "POST", "/api/v0/machines", "{not json"},
		{"invalid json on put", "PUT", "/api/v0/machines/1", "{not json"},
		{"failed validation", "POST", "/api/v0/machines", resources.Machine{Name: "alice", Hostname: "alice", IPv4: "999.1.1.1"}},
		{"missing fields", "POST", "/api/v0/machines", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestMachines_NotFound(t *testing.T) {
	h := setupTestAPI(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/api/v0/machines/99999", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "DELETE", "/api/v0/machines/99999", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "PUT", "/api/v0/machines/99999",
		resources.Machine{ID: 99999, Name: "x", Hostname: "x", IPv4: "10.0.0.1"}).Code)
}

func TestMachines_FindByNaturalKey(t *testing.T) {
	h := setupTestAPI(t)
	w := do(t, h, "POST", "/api/v0/machines", resources.Machine{Name: "alice", Hostname: "alice", IPv4: "10.0.0.7"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[CreatedResponse[int64]](t, w).ID

	w = do(t, h, "GET", "/api/v0/machines/name/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode[resources.Machine](t, w).ID)

	w = do(t, h, "GET", "/api/v0/machines/ipv4/10.0.0.7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode[resources.Machine](t, w).ID)

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/api/v0/machines/name/mallory", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/api/v0/machines/ipv4/203.0.113.99", nil).Code)
}

func TestSSHKeys_Endpoints(t *testing.T) {
	h := setupTestAPI(t)
	w := do(t, h, "POST", "/api/v0/machines", resources.Machine{Name: "alice", Hostname: "alice", IPv4: "10.0.0.7"})
	require.Equal(t, http.StatusCreated, w.Code)
	machineID := decode[CreatedResponse[int64]](t, w).ID

	key := resources.SSHKey{MachineID: machineID, KeyText: "ssh-ed25519 AAAA alice"}
	w = do(t, h, "POST", "/api/v0/sshkeys", key)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusConflict, do(t, h, "POST", "/api/v0/sshkeys", key).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/api/v0/sshkeys",
		resources.SSHKey{MachineID: 404, KeyText: "ssh-ed25519 BBBB"}).Code)

	w = do(t, h, "GET", "/api/v0/machines/"+strconv.FormatInt(machineID, 10), nil)
	machine := decode[resources.Machine](t, w)
	require.Len(t, machine.SSHKeys, 1)
	assert.Equal(t, "ssh-ed25519 AAAA alice", machine.SSHKeys[0].KeyText)
}

func TestNetworks_Endpoints(t *testing.T) {
	h := setupTestAPI(t)

	w := do(t, h, "POST", "/api/v0/networks", resources.Network{
		Name:       "lab",
		Bridge:     "br0",
		Subnet:     "192.168.1.0/24",
		DNSServers: []string{"1.1.1.1"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	networkID := decode[CreatedResponse[int64]](t, w).ID

	w = do(t, h, "POST", "/api/v0/dhcpranges", resources.DHCPRange{NetworkID: networkID, StartIP: "192.168.1.100", EndIP: "192.168.1.150"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, "GET", "/api/v0/networks/"+strconv.FormatInt(networkID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	network := decode[resources.Network](t, w)
	assert.Equal(t, []string{"1.1.1.1"}, network.DNSServers)
	require.Len(t, network.DHCPRanges, 1)
	assert.Equal(t, resources.DefaultLeaseTime, network.DHCPRanges[0].LeaseTime)

	w = do(t, h, "GET", "/api/v0/dhcpranges", nil)
	assert.Len(t, decode[[]resources.DHCPRange](t, w), 1)
}
