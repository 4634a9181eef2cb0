package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cleansermodel "github.com/yamada-labo/prospectline/modules/cleanser/model"
	"github.com/yamada-labo/prospectline/modules/scraper/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestScraper_Scrape_OKWithContactAndPhone(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head><title>株式会社サンプル</title></head>
				<body>TEL: 03-1234-5678
				<a href="/contact/">お問い合わせ</a></body></html>`))
		case "/contact/":
			w.Write([]byte(`<html><body><form>お問い合わせフォーム</form></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	scraper := NewScraper(2, nil, false, nil)
	candidates := []*cleansermodel.Cleansed{
		{CompanyName: "株式会社サンプル", URL: server.URL + "/", Domain: "example"},
	}

	results := scraper.Scrape(t.Context(), candidates)

	require.Len(t, results, 1)
	assert.Equal(t, model.ErrorKindOK, results[0].ErrorKind)
	assert.Equal(t, "03-1234-5678", results[0].Phone)
	assert.Contains(t, results[0].ContactURL, "/contact/")
}

func TestScraper_Scrape_TopPageFailureSetsErrorKind(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	scraper := NewScraper(2, nil, false, nil)
	candidates := []*cleansermodel.Cleansed{
		{CompanyName: "株式会社サンプル", URL: server.URL + "/", Domain: "example"},
	}

	results := scraper.Scrape(t.Context(), candidates)

	require.Len(t, results, 1)
	assert.Equal(t, model.ErrorKindTopPageFailed, results[0].ErrorKind)
}

func TestScraper_Scrape_CompanyMismatchSetsErrorKind(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>全く関係ないサイト</title></head><body>何もありません</body></html>`))
	})

	scraper := NewScraper(2, nil, false, nil)
	candidates := []*cleansermodel.Cleansed{
		{CompanyName: "株式会社サンプル商事", URL: server.URL + "/", Domain: "example"},
	}

	results := scraper.Scrape(t.Context(), candidates)

	require.Len(t, results, 1)
	assert.Equal(t, model.ErrorKindCompanyMismatch, results[0].ErrorKind)
}

func TestScraper_Scrape_PreservesInputOrder(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>株式会社テスト</title></head><body>本文</body></html>`))
	})

	scraper := NewScraper(3, nil, false, nil)
	var candidates []*cleansermodel.Cleansed
	for i := 0; i < 5; i++ {
		candidates = append(candidates, &cleansermodel.Cleansed{CompanyName: fmt.Sprintf("株式会社テスト%d", i), URL: server.URL + "/", Domain: "example"})
	}

	results := scraper.Scrape(t.Context(), candidates)

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, model.ErrorKindOK, r.ErrorKind)
		assert.Equal(t, candidates[i].CompanyName, r.CompanyName)
	}
}
