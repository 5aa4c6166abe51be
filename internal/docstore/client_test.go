package docstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/pkg/errors"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(config.StoreConfig{BaseURL: srv.URL}, zap.NewNop())
	return client, srv
}

func TestCollectionArrayShape(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		w.Write([]byte(`[{"id":"p1","name":"One"},null,{"id":"p2","name":"Two"}]`))
	}))
	defer srv.Close()

	records, err := client.Collection(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, records, 2, "array nulls are dropped")
}

func TestCollectionMapShape(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"b-key":{"name":"Two"},"a-key":{"id":"explicit","name":"One"}}`))
	}))
	defer srv.Close()

	records, err := client.Collection(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Canonical order is sorted by key; a record without its own id gets
	// the map key spliced in, an explicit id wins.
	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal(records[0], &first))
	require.NoError(t, json.Unmarshal(records[1], &second))
	assert.Equal(t, "explicit", first["id"])
	assert.Equal(t, "b-key", second["id"])
}

func TestCollectionMalformedShapesAreEmpty(t *testing.T) {
	for _, body := range []string{`null`, `"a string"`, `42`, `not json at all`} {
		t.Run(body, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			records, err := client.Collection(context.Background(), "products")
			require.NoError(t, err, "a malformed document degrades to empty, it never errors")
			assert.Empty(t, records)
		})
	}
}

func TestCollectionServerError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Collection(context.Background(), "products")
	assert.Error(t, err)
}

func TestGetRecordNullIsNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1.json", r.URL.Path)
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	var dst map[string]interface{}
	err := client.GetRecord(context.Background(), "users", "u1", &dst)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrNotFound{}, err)
}

func TestPutRecord(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := client.PutRecord(context.Background(), "orders", "ORD-ABC123", map[string]string{"status": "pending"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/orders/ORD-ABC123.json", gotPath)
	assert.JSONEq(t, `{"status":"pending"}`, gotBody)
}

func TestPatchAndDelete(t *testing.T) {
	var methods []string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	require.NoError(t, client.PatchRecord(context.Background(), "orders", "o1", map[string]string{"status": "shipped"}))
	require.NoError(t, client.DeleteRecord(context.Background(), "orders", "o1"))

	assert.Equal(t, []string{http.MethodPatch, http.MethodDelete}, methods)
}

func TestGetSingletonNullLeavesDefaults(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	dst := map[string]string{"marqueeText": "default"}
	err := client.GetSingleton(context.Background(), "settings", &dst)
	require.NoError(t, err)
	assert.Equal(t, "default", dst["marqueeText"])
}

func TestBaseURLTrailingSlashNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(config.StoreConfig{BaseURL: srv.URL + "/"}, zap.NewNop())
	_, err := client.Collection(context.Background(), "products")
	assert.NoError(t, err)
}
