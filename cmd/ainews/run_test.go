package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/ainews/internal/app"
)

func TestRunOptions(t *testing.T) {
	tests := []struct {
		name  string
		flags runFlags
		want  app.Options
	}{
		{"defaults", runFlags{fetchContent: true}, app.Options{Days: 7, FetchFullContent: true, GenerateSummaries: true}},
		{"fast", runFlags{days: 3, fast: true, fetchContent: true}, app.Options{Days: 3}},
		{"no summaries", runFlags{noSummaries: true, fetchContent: true}, app.Options{Days: 7, FetchFullContent: true}},
		{"no content", runFlags{}, app.Options{Days: 7, GenerateSummaries: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runOptions(tt.flags, 7))
		})
	}
}

func TestRunCommand_EndToEnd(t *testing.T) {
	published := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC1123Z)
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Local AI</title>
<item><title>New GPU datacenter for distributed training</title><link>https://example.com/gpu</link><pubDate>%s</pubDate></item>
<item><title></title><description></description></item>
</channel></rss>`, published)
	}))
	defer feed.Close()

	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(fmt.Sprintf(`
sources:
  - name: local
    url: %s
  - name: down
    url: http://127.0.0.1:1/feed
`, feed.URL)), 0644))

	t.Setenv("SUMMARY_PROVIDER", "none")
	t.Setenv("SOURCE_DELAY", "0s")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("CATALOG_PATH", "")

	output := filepath.Join(dir, "report.json")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--config", catalog, "--fetch-content=false", "--output", output})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "CATEGORY: AI INFRASTRUCTURE")
	assert.Contains(t, out.String(), "[1] New GPU datacenter for distributed training")
	assert.Contains(t, out.String(), "Results saved to: "+output)
	assert.Contains(t, out.String(), "Processed 11 articles across 4 categories")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc struct {
		Categories map[string][]map[string]interface{} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Categories, 4)
	assert.Len(t, doc.Categories["AI Infrastructure"], 1)
	assert.Len(t, doc.Categories["AI startups to watch"], 10)
	assert.Nil(t, doc.Categories["AI Infrastructure"][0]["ai_summary"])
}

func TestRunCommand_BadCatalogFails(t *testing.T) {
	catalog := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("categories:\n  - name: Robots\n    keywords: [robot]\n"), 0644))
	t.Setenv("CATALOG_PATH", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--config", catalog, "--no-save"})
	assert.Error(t, root.Execute())
}

func TestRunCommand_RejectsNonPositiveDays(t *testing.T) {
	t.Setenv("CATALOG_PATH", "")
	for _, days := range []string{"0", "-3"} {
		t.Run(days, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetArgs([]string{"run", "--no-save", "--days=" + days})
			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--days must be positive")
		})
	}
}
