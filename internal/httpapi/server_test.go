// HTTP-level tests: routing, status mapping, and the JSON envelope.
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakridgedental/clinichub/internal/notify"
	"github.com/oakridgedental/clinichub/internal/sqlite"
	"github.com/oakridgedental/clinichub/pkg/types"
)

// envelope mirrors the shared response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	backend := sqlite.NewBackend()
	config := types.Config{
		DataDir:    t.TempDir(),
		ListenAddr: types.DefaultListenAddr,
	}
	require.NoError(t, backend.Attach(config))
	t.Cleanup(func() { backend.Detach() })

	return NewServer(backend, notify.NewDispatcher())
}

func doRequest(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTables(t *testing.T) {
	s := newTestServer(t)

	rec, env := doRequest(t, s, http.MethodGet, "/api/database/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var tables []types.TableDescriptor
	require.NoError(t, json.Unmarshal(env.Data, &tables))
	names := make(map[string]bool)
	for _, tbl := range tables {
		names[tbl.Name] = true
	}
	assert.True(t, names["patients"])
	assert.True(t, names["backups"])
}

func TestCRUDRoundtrip(t *testing.T) {
	s := newTestServer(t)

	// Insert with an unknown key and a missing phone column.
	rec, env := doRequest(t, s, http.MethodPost, "/api/database/tables/patients", types.Record{
		"full_name": "Test",
		"email":     "t@example.com",
		"bogus":     "dropped",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	require.True(t, env.Success)

	var created struct {
		ID           int64        `json:"id"`
		InsertedData types.Record `json:"insertedData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.NotContains(t, created.InsertedData, "bogus")
	assert.NotContains(t, created.InsertedData, "phone")

	// Row appears with phone at its schema default.
	rec, env = doRequest(t, s, http.MethodGet, "/api/database/tables/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Rows []types.Record `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Len(t, listing.Rows, 1)
	assert.Nil(t, listing.Rows[0]["phone"])

	// Update.
	path := fmt.Sprintf("/api/database/tables/patients/%d", created.ID)
	rec, env = doRequest(t, s, http.MethodPut, path, types.Record{"full_name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Changes int64 `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, int64(1), updated.Changes)

	// Delete, then delete again.
	rec, _ = doRequest(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, env = doRequest(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestInvalidTableNameRejected(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/database/tables/no_such_table", nil},
		{http.MethodPost, "/api/database/tables/no_such_table", types.Record{"a": 1}},
		{http.MethodPut, "/api/database/tables/no_such_table/1", types.Record{"a": 1}},
		{http.MethodDelete, "/api/database/tables/no_such_table/1", nil},
	} {
		rec, env := doRequest(t, s, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
		assert.False(t, env.Success)
	}
}

func TestUpdateMissingRowIs404(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodPut, "/api/database/tables/patients/424242", types.Record{"full_name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsertEmptyFilteredPayloadIs400(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodPost, "/api/database/tables/patients", types.Record{"not_a_column": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Missing q.
	rec, env := doRequest(t, s, http.MethodGet, "/api/database/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	doRequest(t, s, http.MethodPost, "/api/database/tables/patients", types.Record{"full_name": "Ahmed Samir"})

	rec, env = doRequest(t, s, http.MethodGet, "/api/database/search?q=ahmed&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Query   string               `json:"query"`
		Results []types.SearchResult `json:"results"`
		Total   int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "ahmed", result.Query)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "patients", result.Results[0].SourceTable)
}

func TestRawQueryGate(t *testing.T) {
	s := newTestServer(t)

	rec, env := doRequest(t, s, http.MethodPost, "/api/database/query", map[string]any{
		"query": "DELETE FROM users",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)

	rec, env = doRequest(t, s, http.MethodPost, "/api/database/query", map[string]any{
		"query": "  select 1 AS one",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Count   int            `json:"count"`
		Results []types.Record `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Count)
}

func TestBackupEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec, env := doRequest(t, s, http.MethodPost, "/api/database/backup", map[string]any{"name": "apitest"})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var result types.BackupResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "apitest", result.Name)
	assert.Positive(t, result.FileSize)

	rec, env = doRequest(t, s, http.MethodGet, "/api/database/backups", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var backups []types.BackupRecord
	require.NoError(t, json.Unmarshal(env.Data, &backups))
	require.Len(t, backups, 1)
	assert.Equal(t, types.BackupCompleted, backups[0].Status)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, env := doRequest(t, s, http.MethodGet, "/api/database/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Tables       map[string]int64 `json:"tables"`
		TableCount   int              `json:"table_count"`
		SQLiteString string           `json:"sqlite_version"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Contains(t, stats.Tables, "patients")
	assert.NotZero(t, stats.TableCount)
}

func TestNotificationTest(t *testing.T) {
	s := newTestServer(t)

	rec, env := doRequest(t, s, http.MethodPost, "/api/notifications/test", notify.Booking{
		PatientName: "Ahmed Samir",
		Phone:       "+20111111111",
		DoctorName:  "Dr. Mona Khalil",
		ScheduledAt: "2026-09-02T12:30:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Channels map[string]bool `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Channels[notify.ChannelSMS])
	assert.True(t, result.Channels[notify.ChannelWhatsApp])

	// No phone → 400.
	rec, _ = doRequest(t, s, http.MethodPost, "/api/notifications/test", notify.Booking{PatientName: "No Phone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
