package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagHandlers_ListAndGet(t *testing.T) {
	ts := setupTestServer(t)

	breakfast := ts.seedTag(t, "Breakfast", "#e26c2d")
	ts.seedTag(t, "Dinner", "#49B64E")

	resp := ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[TagListResponse](t, resp.Body.Bytes())
	require.Len(t, env.Data.Tags, 2)
	// Ordered by name; colors are stored uppercased.
	assert.Equal(t, "Breakfast", env.Data.Tags[0].Name)
	assert.Equal(t, "#E26C2D", env.Data.Tags[0].Color)
	assert.Equal(t, "breakfast", env.Data.Tags[0].Slug)

	single := ts.api.Get("/api/v1/tags/" + breakfast.ID)
	require.Equal(t, http.StatusOK, single.Code)
	singleEnv := decodeEnvelope[TagResponse](t, single.Body.Bytes())
	assert.Equal(t, breakfast.ID, singleEnv.Data.ID)
}

func TestTagHandlers_GetMissing(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags/tag-ghost")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
