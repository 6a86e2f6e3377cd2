package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>T</title><style>.x{}</style></head>
<body>
  <header>Site header</header>
  <nav>Home | About</nav>
  <div class="content">Sidebar content that should lose to article</div>
  <article>
    <h1>GPU   clusters</h1>
    <p>Training runs are
       getting bigger.</p>
    <script>var tracking = 1;</script>
  </article>
  <footer>Copyright</footer>
</body></html>`

func TestExtract_PrefersArticleRegion(t *testing.T) {
	s := New(nil, "", 0)
	got, err := s.Extract(strings.NewReader(articlePage))
	require.NoError(t, err)
	assert.Equal(t, "GPU clusters Training runs are getting bigger.", got)
}

func TestExtract_FallsBackToBody(t *testing.T) {
	page := `<html><body><header>Top</header><div><p>Just a</p><p>plain page</p></div><footer>x</footer></body></html>`
	s := New(nil, "", 0)
	got, err := s.Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Just a plain page", got)
}

func TestExtract_SelectorPriority(t *testing.T) {
	page := `<html><body><main>Main text</main><div class="post-content">Post text</div></body></html>`
	s := New(nil, "", 0)
	got, err := s.Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Post text", got)
}

func TestExtract_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 50)
	page := fmt.Sprintf("<html><body><article>%s</article></body></html>", long)

	s := New(nil, "", 20)
	got, err := s.Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "word word word word "+TruncationMarker, got)
}

func TestFetchContent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, articlePage)
	}))
	defer srv.Close()

	s := New(srv.Client(), "test-agent/1.0", 0)

	got, err := s.FetchContent(context.Background(), srv.URL+"/post")
	require.NoError(t, err)
	assert.Contains(t, got, "Training runs are getting bigger.")
	assert.Equal(t, "test-agent/1.0", gotUA)

	_, err = s.FetchContent(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}
