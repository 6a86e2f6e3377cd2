package news

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultKeywordTable_CoversEveryCategoryInOrder(t *testing.T) {
	table := DefaultKeywordTable()
	require.NoError(t, table.Validate())
	require.Len(t, table, len(Categories()))
	for i, cat := range Categories() {
		assert.Equal(t, cat, table[i].Category)
		assert.NotEmpty(t, table[i].Keywords)
	}
}

func TestLoadKeywordTable(t *testing.T) {
	path := writeCatalog(t, `
categories:
  - name: AI Builder tools
    keywords: [sdk, ide]
  - name: AI Infrastructure
    keywords: [gpu]
`)
	table, err := LoadKeywordTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, BuilderTools, table[0].Category)
	assert.Equal(t, []string{"sdk", "ide"}, table[0].Keywords)
	assert.Equal(t, Infrastructure, table[1].Category)
}

func TestLoadKeywordTable_MissingSectionYieldsNil(t *testing.T) {
	path := writeCatalog(t, "sources: []\n")
	table, err := LoadKeywordTable(path)
	require.NoError(t, err)
	assert.Nil(t, table)
}

func TestLoadKeywordTable_RejectsRepeatedKeyword(t *testing.T) {
	path := writeCatalog(t, `
categories:
  - name: AI Infrastructure
    keywords: [gpu, GPU, cloud, chips]
`)
	_, err := LoadKeywordTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `keyword "gpu" listed twice`)
}

func TestLoadKeywordTable_RejectsUnknownCategory(t *testing.T) {
	path := writeCatalog(t, `
categories:
  - name: Quantum
    keywords: [qubit]
`)
	_, err := LoadKeywordTable(path)
	assert.Error(t, err)
}
