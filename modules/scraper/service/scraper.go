package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	cleansermodel "github.com/yamada-labo/prospectline/modules/cleanser/model"
	"github.com/yamada-labo/prospectline/modules/scraper/model"
	"github.com/yamada-labo/prospectline/modules/scraper/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency is M from §4.4: the global fetch semaphore size.
	DefaultConcurrency = 10
	fetchTimeout       = 10 * time.Second
	politenessDelay    = 200 * time.Millisecond
	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// commonContactPaths are probed against base_url, in order, when no
// contact link was found on the top page.
var commonContactPaths = []string{
	"contact/", "contact.html", "inquiry/", "inquiry.html",
	"otoiawase/", "contact-us/",
}

// commonAboutPaths are probed when a phone number is still missing after
// the contact page, if any, has been checked.
var commonAboutPaths = []string{"company/", "about/"}

// Scraper runs the candidate → EnrichedRecord state machine under a
// bounded-concurrency semaphore.
type Scraper struct {
	httpClient      *http.Client
	concurrency     int
	renderer        ports.Renderer
	jsRenderEnabled bool
	log             *zap.Logger
}

// NewScraper builds a Scraper. TLS verification is disabled at the
// transport to maximise reachability against the long tail of small
// company sites with misconfigured certificates — a pragmatic trade-off,
// not an oversight; no credentials or sensitive data flow over these
// connections.
func NewScraper(concurrency int, renderer ports.Renderer, jsRenderEnabled bool, log *zap.Logger) *Scraper {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Scraper{
		httpClient: &http.Client{
			Timeout:   fetchTimeout,
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
		},
		concurrency:     concurrency,
		renderer:        renderer,
		jsRenderEnabled: jsRenderEnabled,
		log:             log,
	}
}

// Scrape runs every candidate's state machine under the concurrency cap
// and returns one EnrichedRecord per candidate, in input order.
func (s *Scraper) Scrape(ctx context.Context, candidates []*cleansermodel.Cleansed) []*model.EnrichedRecord {
	results := make([]*model.EnrichedRecord, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for i, c := range candidates {
		g.Go(func() error {
			results[i] = s.scrapeOne(ctx, c)
			time.Sleep(politenessDelay)
			return nil
		})
	}
	_ = g.Wait() // scrapeOne never returns an error; per-candidate failure lives in ErrorKind

	return results
}

func (s *Scraper) scrapeOne(ctx context.Context, c *cleansermodel.Cleansed) *model.EnrichedRecord {
	rec := &model.EnrichedRecord{CompanyName: c.CompanyName, URL: c.URL, Domain: c.Domain}

	base, err := baseURL(c.URL)
	if err != nil {
		rec.ErrorKind = model.ErrorKindTopPageFailed
		return rec
	}
	rec.URL = base

	html, err := s.fetchWithRetry(ctx, base)
	if err != nil {
		rec.ErrorKind = model.ErrorKindTopPageFailed
		return rec
	}

	top, err := parsePage(html)
	if err != nil {
		rec.ErrorKind = model.ErrorKindTopPageFailed
		return rec
	}

	if !s.matchesCompany(c.CompanyName, top) {
		if rendered := s.renderFallback(ctx, base, c.CompanyName); rendered != nil {
			top = rendered
		} else {
			rec.ErrorKind = model.ErrorKindCompanyMismatch
			return rec
		}
	}

	s.extractAndEnrich(ctx, rec, top, base)
	rec.ErrorKind = model.ErrorKindOK
	return rec
}

func (s *Scraper) matchesCompany(name string, p *page) bool {
	return NameMatches(name, p.title(), p.siteName(), p.sectionText(), p.bodyText())
}

// renderFallback re-fetches base through a headless-browser render when
// the static page failed the name match, and is only attempted when
// js-render is enabled and a renderer is configured.
func (s *Scraper) renderFallback(ctx context.Context, base, companyName string) *page {
	if !s.jsRenderEnabled || s.renderer == nil {
		return nil
	}
	html, err := s.renderer.Render(ctx, base)
	if err != nil {
		return nil
	}
	rendered, err := parsePage(html)
	if err != nil {
		return nil
	}
	if !s.matchesCompany(companyName, rendered) {
		return nil
	}
	return rendered
}

func (s *Scraper) extractAndEnrich(ctx context.Context, rec *model.EnrichedRecord, top *page, base string) {
	contactURL := ExtractContactLink(top.links(), base)
	phone := ExtractPhone(top.telHrefs(), top.bodyText())

	if contactURL != "" {
		if contactHTML, err := s.fetch(ctx, contactURL); err == nil {
			if contactPage, err := parsePage(contactHTML); err == nil && phone == "" {
				phone = ExtractPhone(contactPage.telHrefs(), contactPage.bodyText())
			}
		}
	} else {
		contactURL, phone = s.probeContactPaths(ctx, base, phone)
	}

	if phone == "" {
		phone = s.probePhonePaths(ctx, base)
	}

	rec.ContactURL = contactURL
	rec.Phone = phone
}

func (s *Scraper) probeContactPaths(ctx context.Context, base string, phone string) (contactURL, resolvedPhone string) {
	resolvedPhone = phone
	for _, path := range commonContactPaths {
		candidateURL := base + path
		html, err := s.fetch(ctx, candidateURL)
		if err != nil {
			continue
		}
		p, err := parsePage(html)
		if err != nil || !p.hasContactEvidence() {
			continue
		}
		contactURL = candidateURL
		if resolvedPhone == "" {
			resolvedPhone = ExtractPhone(p.telHrefs(), p.bodyText())
		}
		return contactURL, resolvedPhone
	}
	return "", resolvedPhone
}

func (s *Scraper) probePhonePaths(ctx context.Context, base string) string {
	for _, path := range commonAboutPaths {
		html, err := s.fetch(ctx, base+path)
		if err != nil {
			continue
		}
		p, err := parsePage(html)
		if err != nil {
			continue
		}
		if phone := ExtractPhone(p.telHrefs(), p.bodyText()); phone != "" {
			return phone
		}
	}
	return ""
}

func (s *Scraper) fetchWithRetry(ctx context.Context, u string) (string, error) {
	html, err := s.fetch(ctx, u)
	if err != nil {
		html, err = s.fetch(ctx, u)
	}
	return html, err
}

func (s *Scraper) fetch(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scrape: unexpected status %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// baseURL reduces rawURL to scheme+authority+"/".
func baseURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("scrape: invalid url %q", rawURL)
	}
	return parsed.Scheme + "://" + parsed.Host + "/", nil
}
