package oapidoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_RenderToFile(t *testing.T) {
	g := New()
	require.NoError(t, g.Register("title", "Search API"))
	path := filepath.Join(t.TempDir(), "openapi3.yaml")

	require.NoError(t, g.RenderToFile("info:\n  title: {{title}}\n", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "info:\n  title: Search API\n", string(data))
}

func TestGenerator_RenderToFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "openapi3.yaml")
	err := New().RenderToFile("openapi: 3.0.3", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestViewers(t *testing.T) {
	assert.Contains(t, SwaggerUIHTML("/openapi3.yaml"), "url: '/openapi3.yaml'")
	assert.Contains(t, RedocUIHTML("/openapi3.yaml"), "spec-url='/openapi3.yaml'")

	dir := t.TempDir()
	swaggerPath := filepath.Join(dir, "swagger-ui.html")
	redocPath := filepath.Join(dir, "redoc-ui.html")
	require.NoError(t, SwaggerUIHTMLToFile("/openapi3.yaml", swaggerPath))
	require.NoError(t, RedocUIHTMLToFile("/openapi3.yaml", redocPath))

	data, err := os.ReadFile(swaggerPath)
	require.NoError(t, err)
	assert.Equal(t, SwaggerUIHTML("/openapi3.yaml"), string(data))
	data, err = os.ReadFile(redocPath)
	require.NoError(t, err)
	assert.Equal(t, RedocUIHTML("/openapi3.yaml"), string(data))
}
