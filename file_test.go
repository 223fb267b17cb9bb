package phyloxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trees.phyloxml")
	original := richAggregate()

	require.NoError(t, WriteFile(original, path))
	parsed, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestFileRoundTrip_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trees.phyloxml.gz")
	original := richAggregate()

	require.NoError(t, WriteFile(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 2)
	require.Equal(t, byte(0x1f), data[0], "output is gzip-compressed")
	require.Equal(t, byte(0x8b), data[1])

	parsed, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.phyloxml.gz")
	doc := &Phyloxml{Phylogenies: []*Phylogeny{
		{Name: "one", Root: &Clade{}},
		{Name: "two", Root: &Clade{}},
	}}
	require.NoError(t, WriteFile(doc, path))

	var names []string
	for phy, err := range ParseFile(path) {
		require.NoError(t, err)
		names = append(names, phy.Name)
	}
	require.Equal(t, []string{"one", "two"}, names)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.phyloxml"))
	require.Error(t, err)
}
