package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianB88/duurzame-kennisbank/internal/catalog"
)

func TestLoadAllMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data.json"))

	resources, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, resources)
	assert.NotNil(t, resources)
}

func TestLoadAllRecoversFromBadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid syntax", content: "{not json"},
		{name: "not a sequence", content: `{"title": "solo"}`},
		{name: "null", content: "null"},
		{name: "wrong element type", content: "[1, 2, 3]"},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			resources, err := New(path).LoadAll()
			require.NoError(t, err)
			assert.Empty(t, resources)
			assert.NotNil(t, resources)
		})
	}
}

func TestAppendRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data.json"))

	first := catalog.Resource{
		Title:       "Solar basics",
		Description: "An introduction to photovoltaics",
		Type:        "article",
		Tags:        []string{"solar", "energy"},
		URL:         "https://example.org/solar",
	}
	second := catalog.Resource{
		Title: "Wind atlas",
		Type:  "dataset",
		Tags:  []string{"wind"},
		File:  "atlas.pdf",
	}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	resources, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []catalog.Resource{first, second}, resources)
}

func TestAppendKeepsExistingSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	existing := `[{"title":"Old entry","description":"","type":"","tags":[],"url":""}]`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	store := New(path)
	require.NoError(t, store.Append(catalog.Resource{Title: "New entry", Tags: []string{}}))

	resources, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "Old entry", resources[0].Title)
	assert.Equal(t, "New entry", resources[1].Title)
}

func TestAppendWritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := New(path)

	require.NoError(t, store.Append(catalog.Resource{Title: "Readable", Tags: []string{}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
}
