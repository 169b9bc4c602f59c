package erpnext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Create_TokenPairAuth(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"name":"DEPT-001"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{APIKey: "key", APISecret: "secret"})
	resp, err := c.Create(context.Background(), "Department", map[string]any{"department_name": "Signage"})
	require.NoError(t, err)

	assert.Equal(t, "token key:secret", gotAuth)
	assert.Equal(t, "/api/resource/Department", gotPath)
	assert.Equal(t, "Signage", gotBody["department_name"])
	assert.True(t, resp.HasData())
	assert.Equal(t, "DEPT-001", resp.Data()["name"])
}

func TestClient_BearerAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{Token: "abc123"})
	_, err := c.Create(context.Background(), "Department", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

// A rejected request is not a transport error: the body comes back under the
// "error" key so the success predicate fails uniformly.
func TestClient_Create_NonOKWrapsErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"exc_type":"PermissionError"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	resp, err := c.Create(context.Background(), "Department", map[string]any{})
	require.NoError(t, err)
	assert.False(t, resp.HasData())
	assert.Contains(t, resp.ErrorDetail(), "PermissionError")
}

func TestClient_Records_FilterSerialization(t *testing.T) {
	var gotFilters string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilters = r.URL.Query().Get("filters")
		_, _ = w.Write([]byte(`{"data":[{"name":"PRF-001"},{"name":"PRF-002"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	rows, err := c.Records(context.Background(), "Purchase Request", []Filter{
		In("Purchase Request", "status", "Draft", "Open"),
		Eq("Purchase Request", "department", "Signage"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PRF-001", rows[0]["name"])

	var decoded [][]any
	require.NoError(t, json.Unmarshal([]byte(gotFilters), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, []any{"Purchase Request", "status", "in", []any{"Draft", "Open"}}, decoded[0])
	assert.Equal(t, []any{"Purchase Request", "department", "=", "Signage"}, decoded[1])
}

func TestClient_Records_NonOKIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	_, err := c.Records(context.Background(), "Project", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_Update_PathAndMethod(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	_, err := c.Update(context.Background(), "Project", "Tower A", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/resource/Project/Tower A", gotPath)
}

func TestClient_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/resource/Project/Known" {
			_, _ = w.Write([]byte(`{"data":{}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	ok, err := c.Exists(context.Background(), "Project", "Known")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(context.Background(), "Project", "Unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResponse_HasData(t *testing.T) {
	assert.True(t, Response{"data": map[string]any{}}.HasData())
	assert.True(t, Response{"data": nil}.HasData())
	assert.False(t, Response{"message": "ok"}.HasData())
	assert.False(t, Response{}.HasData())
}
