package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homeinv/internal/imagestore"
	"github.com/vbonduro/homeinv/internal/service"
	"github.com/vbonduro/homeinv/internal/store"
	"github.com/vbonduro/homeinv/internal/web"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inv, err := service.New(context.Background(), store.NewMemoryStore(), imagestore.NewMemoryStore(), logger)
	require.NoError(t, err)

	ts := httptest.NewServer(web.NewServer(inv, logger))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func createLocation(t *testing.T, ts *httptest.Server, name, typ string, parentID *uuid.UUID) uuid.UUID {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/locations", map[string]any{
		"name": name, "type": typ, "parentId": parentID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var loc struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &loc))
	return loc.ID
}

func TestLocationLifecycle(t *testing.T) {
	ts := newTestServer(t)

	home := createLocation(t, ts, "Home", "house", nil)
	kitchen := createLocation(t, ts, "Kitchen", "room", &home)
	cabinet := createLocation(t, ts, "Cabinet A", "cabinet", &kitchen)

	// Roots and children.
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/locations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var roots []map[string]any
	require.NoError(t, json.Unmarshal(body, &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "Home", roots[0]["name"])
	assert.Equal(t, float64(1), roots[0]["childCount"])

	// Detail carries the breadcrumb in root-to-leaf order.
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/locations/%s", ts.URL, cabinet), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Breadcrumb []struct {
			Name string `json:"name"`
		} `json:"breadcrumb"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	require.Len(t, detail.Breadcrumb, 3)
	assert.Equal(t, "Home", detail.Breadcrumb[0].Name)
	assert.Equal(t, "Cabinet A", detail.Breadcrumb[2].Name)

	// Rename.
	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/locations/%s", ts.URL, kitchen), map[string]any{
		"name": "Big Kitchen", "type": "room",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete cascades.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/locations/%s", ts.URL, kitchen), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/locations/%s", ts.URL, cabinet), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMoveLocationCycleIsConflict(t *testing.T) {
	ts := newTestServer(t)

	home := createLocation(t, ts, "Home", "house", nil)
	kitchen := createLocation(t, ts, "Kitchen", "room", &home)

	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/locations/%s/move", ts.URL, home), map[string]any{
		"newParentId": kitchen,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	// A legal move succeeds.
	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/locations/%s/move", ts.URL, kitchen), map[string]any{
		"newParentId": nil,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestItemEndpoints(t *testing.T) {
	ts := newTestServer(t)

	home := createLocation(t, ts, "Home", "house", nil)
	kitchen := createLocation(t, ts, "Kitchen", "room", &home)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/items", map[string]any{
		"name": "Blender", "locationId": kitchen,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var item struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &item))

	// Update, move to unassigned, duplicate back into the kitchen.
	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/items/%s", ts.URL, item.ID), map[string]any{
		"name": "Stand Blender", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/items/%s/move", ts.URL, item.ID), map[string]any{
		"newLocationId": nil,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/items/%s/duplicate", ts.URL, item.ID), map[string]any{
		"newLocationId": kitchen,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var dup struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &dup))
	assert.Equal(t, "Stand Blender (Copy)", dup.Name)

	// Unassigned listing sees the moved original.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/items?location=unassigned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unassigned []any
	require.NoError(t, json.Unmarshal(body, &unassigned))
	assert.Len(t, unassigned, 1)

	// Search is substring, case-insensitive; empty query returns nothing.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/search?q=blender", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []any
	require.NoError(t, json.Unmarshal(body, &found))
	assert.Len(t, found, 2)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/search?q=", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var none []any
	require.NoError(t, json.Unmarshal(body, &none))
	assert.Empty(t, none)
}

func TestImageAndHotspotFlow(t *testing.T) {
	ts := newTestServer(t)

	home := createLocation(t, ts, "Home", "house", nil)
	kitchen := createLocation(t, ts, "Kitchen", "room", &home)

	// No image yet.
	resp, _ := doJSON(t, http.MethodGet, fmt.Sprintf("%s/locations/%s/image", ts.URL, kitchen), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Upload.
	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/locations/%s/image", ts.URL, kitchen), strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	upResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, upResp.StatusCode)
	require.NoError(t, upResp.Body.Close())

	// Download round-trips the bytes.
	resp2, err := http.Get(fmt.Sprintf("%s/locations/%s/image", ts.URL, kitchen))
	require.NoError(t, err)
	data, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	require.NoError(t, resp2.Body.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	// Tap the map: child location plus hotspot in one request.
	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/locations/%s/hotspots", ts.URL, kitchen), map[string]any{
		"name": "Pantry", "x": 0.4, "y": 0.6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		Location struct {
			ID       uuid.UUID  `json:"id"`
			ParentID *uuid.UUID `json:"parentId"`
		} `json:"location"`
		Hotspot struct {
			ID uuid.UUID `json:"id"`
			X  float64   `json:"x"`
		} `json:"hotspot"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.Location.ParentID)
	assert.Equal(t, kitchen, *created.Location.ParentID)
	assert.Equal(t, 0.4, created.Hotspot.X)

	// The hotspot rides along on the parent's detail.
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/locations/%s", ts.URL, kitchen), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Hotspots []any `json:"hotspots"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Len(t, detail.Hotspots, 1)

	// Deleting the hotspot's target location sweeps the hotspot too.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/locations/%s", ts.URL, created.Location.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/locations/%s", ts.URL, kitchen), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Empty(t, detail.Hotspots)
}

func TestReconcileEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/reconcile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]int
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Zero(t, result["dropped"])
}

func TestValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/locations", map[string]any{
		"name": "   ", "type": "room",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/locations/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/locations/%s", ts.URL, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
