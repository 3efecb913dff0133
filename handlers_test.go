package carmuseum

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	content, err := LoadEmbedded()
	require.NoError(t, err)
	if cfg.RateLimit == 0 {
		cfg.RateLimit = -1
	}
	a := New(cfg, content, opts...)
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, method, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestNewsEndpoint(t *testing.T) {
	a := newTestApp(t, Config{})

	t.Run("unfiltered", func(t *testing.T) {
		rec := serve(a, http.MethodGet, "/api/news")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeJSON[NewsResult](t, rec)
		assert.Equal(t, a.Content.NewsArticles(), res.Articles)
		assert.Equal(t, NewsCategories, res.AvailableCategories)
	})

	t.Run("All equals unfiltered", func(t *testing.T) {
		all := serve(a, http.MethodGet, "/api/news?category=All")
		none := serve(a, http.MethodGet, "/api/news")
		assert.JSONEq(t, none.Body.String(), all.Body.String())
	})

	t.Run("Reviews includes article-2", func(t *testing.T) {
		res := decodeJSON[NewsResult](t, serve(a, http.MethodGet, "/api/news?category=Reviews"))
		ids := make([]string, 0, len(res.Articles))
		for _, art := range res.Articles {
			assert.Equal(t, CategoryReviews, art.Category)
			ids = append(ids, art.ID)
		}
		assert.Contains(t, ids, "article-2")
	})

	t.Run("Electric excludes article-2", func(t *testing.T) {
		res := decodeJSON[NewsResult](t, serve(a, http.MethodGet, "/api/news?category=Electric"))
		for _, art := range res.Articles {
			assert.NotEqual(t, "article-2", art.ID)
		}
	})

	t.Run("unknown category is an empty list", func(t *testing.T) {
		rec := serve(a, http.MethodGet, "/api/news?category=Motorsport")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
		res := decodeJSON[NewsResult](t, rec)
		assert.Equal(t, NewsCategories, res.AvailableCategories)
	})

	t.Run("empty category is a literal filter", func(t *testing.T) {
		rec := serve(a, http.MethodGet, "/api/news?category=")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
		res := decodeJSON[NewsResult](t, rec)
		assert.Empty(t, res.Articles)
		assert.Equal(t, NewsCategories, res.AvailableCategories)
	})
}

func TestModelsEndpoint(t *testing.T) {
	a := newTestApp(t, Config{})

	rec := serve(a, http.MethodGet, "/api/models")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeJSON[ModelsResult](t, rec)
	assert.Equal(t, a.Content.FeaturedModels(), res.Featured)
	assert.Equal(t, a.Content.EncyclopediaModels(), res.Encyclopedia)

	res = decodeJSON[ModelsResult](t, serve(a, http.MethodGet, "/api/models?q=911"))
	require.Len(t, res.Encyclopedia, 1)
	assert.Equal(t, "Porsche 911", res.Encyclopedia[0].Name)
	assert.Equal(t, a.Content.FeaturedModels(), res.Featured, "q must not filter featured models")

	rec = serve(a, http.MethodGet, "/api/models?q=zzz")
	assert.Contains(t, rec.Body.String(), `"encyclopedia":[]`)
}

func TestListingEndpoints(t *testing.T) {
	a := newTestApp(t, Config{})

	tests := []struct {
		path string
		keys []string
	}{
		{"/api/brands", []string{"data"}},
		{"/api/garage", []string{"vehicles"}},
		{"/api/dealerships", []string{"data"}},
		{"/api/projects", []string{"data", "timeline"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(a, http.MethodGet, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
			body := decodeJSON[map[string]json.RawMessage](t, rec)
			assert.Len(t, body, len(tt.keys))
			for _, k := range tt.keys {
				assert.Contains(t, body, k)
			}
		})
	}

	dl := decodeJSON[dealershipsResponse](t, serve(a, http.MethodGet, "/api/dealerships"))
	assert.Equal(t, a.Content.Dealerships(), dl.Data)

	g := decodeJSON[garageResponse](t, serve(a, http.MethodGet, "/api/garage"))
	assert.Equal(t, a.Content.GarageVehicles(), g.Vehicles)
}

func TestSummaryEndpoint(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]json.RawMessage](t, rec)
	for _, k := range []string{
		"newsCategories", "newsArticles", "featuredModels", "quickLinks",
		"timelineEntries", "restorationProjects", "brands",
		"encyclopediaModels", "garageVehicles", "dealerships",
	} {
		assert.Contains(t, body, k)
	}

	d := decodeJSON[Dataset](t, rec)
	assert.Equal(t, a.Content.Dataset(), d)
}

func TestNotFoundIsJSON(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/api/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	res := decodeJSON[ErrorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Not Found", res.Error)
}

func TestMethodNotAllowed(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodPost, "/api/news")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimit(t *testing.T) {
	a := newTestApp(t, Config{RateLimit: 2})

	for i := 0; i < 2; i++ {
		rec := serve(a, http.MethodGet, "/api/brands")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := serve(a, http.MethodGet, "/api/brands")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	res := decodeJSON[ErrorResponse](t, rec)
	assert.Equal(t, "too many requests", res.Error)

	rec = serve(a, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client IP")
}

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func TestWithLimiter(t *testing.T) {
	a := newTestApp(t, Config{}, WithLimiter(denyAll{}))
	rec := serve(a, http.MethodGet, "/api/news")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestETag(t *testing.T) {
	a := newTestApp(t, Config{})

	rec := serve(a, http.MethodGet, "/api/brands")
	require.Equal(t, http.StatusOK, rec.Code)
	tag := rec.Header().Get("ETag")
	require.Equal(t, `W/"`+a.Content.Version()+`"`, tag)

	rec = serve(a, http.MethodGet, "/api/news?category=Reviews", "If-None-Match", tag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(a, http.MethodGet, "/api/news", "If-None-Match", `"stale"`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, http.MethodGet, "/health")
	assert.Empty(t, rec.Header().Get("ETag"))
}

func TestETagSkipsUnknownRoutes(t *testing.T) {
	a := newTestApp(t, Config{})

	for _, target := range []string{"/api/nope", "/api/news/", "/feed.rss"} {
		rec := serve(a, http.MethodGet, target, "If-None-Match", "*")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Empty(t, rec.Header().Get("ETag"), target)
	}

	rec := serve(a, http.MethodPost, "/api/news", "If-None-Match", "*")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, rec.Header().Get("ETag"))
}

func TestEtagMatches(t *testing.T) {
	tag := `W/"abc"`
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{`W/"abc"`, true},
		{`"abc"`, true},
		{`"xyz", W/"abc"`, true},
		{`"xyz"`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, etagMatches(tt.header, tag), "header %q", tt.header)
	}
}

func TestFeed(t *testing.T) {
	a := newTestApp(t, Config{SiteURL: "https://autoverse.example"})
	rec := serve(a, http.MethodGet, "/feed.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/rss+xml"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	var feed rssXML
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Equal(t, "AutoVerse News", feed.Channel.Title)
	require.Len(t, feed.Channel.Items, len(a.Content.NewsArticles()))
	first := feed.Channel.Items[0]
	assert.Equal(t, "https://autoverse.example/news/article-1", first.Link)
	assert.Equal(t, "article-1", first.GUID.Value)
	assert.Equal(t, "https://autoverse.example/news", feed.Channel.Link)
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, Config{SiteURL: "https://autoverse.example/"})
	rec := serve(a, http.MethodGet, "/sitemap.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/xml"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var set sitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.URLs, 2+len(a.Content.NewsArticles()))
	assert.Equal(t, "https://autoverse.example/", set.URLs[0].Loc)
	assert.Equal(t, "https://autoverse.example/news", set.URLs[1].Loc)
	assert.Equal(t, "https://autoverse.example/news/article-1", set.URLs[2].Loc)
}

func TestSiteLink(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"http://localhost:4000", nil, "http://localhost:4000/"},
		{"https://example.com/cars/", []string{"news"}, "https://example.com/cars/news"},
		{"https://example.com", []string{"news", "a b"}, "https://example.com/news/a%20b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, siteLink(tt.base, tt.segments...))
	}
}

func TestMetrics(t *testing.T) {
	a := newTestApp(t, Config{Metrics: true})
	serve(a, http.MethodGet, "/api/brands")

	rec := serve(a, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carmuseum_requests_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetricsDisabled(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomRoutes(t *testing.T) {
	a := newTestApp(t, Config{}, WithCustomRoutes(func(a *App) {
		a.Echo.GET("/api/version", func(c echo.Context) error {
			return c.String(http.StatusOK, a.Content.Version())
		})
	}))
	rec := serve(a, http.MethodGet, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, a.Content.Version(), rec.Body.String())
}

func TestCORS(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/api/brands", "Origin", "https://app.example")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGzip(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/api/summary", "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}
