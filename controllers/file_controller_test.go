package controllers_test

import (
	"bytes"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileEndpointServesStoredImage(t *testing.T) {
	env := setupTestEnv(t)

	name, err := env.roomUploads.Save("photo.png", "image/png", 4, bytes.NewReader([]byte("data")))
	assert.NoError(t, err)

	w := env.doJSON(t, http.MethodGet, "/api/files/"+name, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "data", w.Body.String())
}

func TestFileEndpointReturns404ForMissingFile(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/files/nothing.png", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFileEndpointBlocksPathTraversal(t *testing.T) {
	env := setupTestEnv(t)

	// Plant a file one level above the storage root; a traversal request
	// must not reach it.
	outside := filepath.Join(filepath.Dir(env.roomUploads.Root), "secret.png")
	assert.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	escaped := url.PathEscape("../secret.png")
	w := env.doJSON(t, http.MethodGet, "/api/files/"+escaped, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}
