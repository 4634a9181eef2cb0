package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page is the subset of a fetched HTML document the state machine reads
// from at each step.
type page struct {
	doc *goquery.Document
}

func parsePage(html string) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style").Remove()
	return &page{doc: doc}, nil
}

func (p *page) title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

func (p *page) siteName() string {
	name, _ := p.doc.Find(`meta[property="og:site_name"]`).First().Attr("content")
	return strings.TrimSpace(name)
}

func (p *page) sectionText() string {
	var b strings.Builder
	p.doc.Find("header, footer, .company, .about, #company, #about").Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
		b.WriteString(" ")
	})
	return b.String()
}

func (p *page) bodyText() string {
	return p.doc.Find("body").Text()
}

func (p *page) links() []linkCandidate {
	var links []linkCandidate
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, linkCandidate{href: href, text: s.Text()})
	})
	return links
}

func (p *page) telHrefs() []string {
	var hrefs []string
	p.doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, strings.TrimPrefix(href, "tel:"))
	})
	return hrefs
}

func (p *page) hasContactEvidence() bool {
	lower := strings.ToLower(p.doc.Text())
	if p.doc.Find("form").Length() > 0 {
		return true
	}
	return strings.Contains(p.doc.Text(), "お問い合わせ") || strings.Contains(lower, "contact")
}
