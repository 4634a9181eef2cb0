package service

import (
	"fmt"
	"os"

	"github.com/gomutex/godocx"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
)

// BuildDOCX renders a short run summary: a heading, the keyword and
// result count, and one line per record. godocx only writes to a path,
// so the document is built into a temp file and read back as bytes.
func BuildDOCX(keyword string, records []*scrapermodel.EnrichedRecord) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	doc.AddHeading("営業リスト作成結果", 1)
	doc.AddParagraph(fmt.Sprintf("検索キーワード: %s", keyword))
	doc.AddParagraph(fmt.Sprintf("取得件数: %d件", len(records)))

	for _, r := range records {
		line := r.CompanyName + " - " + r.URL
		if r.ContactURL != "" {
			line += " (" + r.ContactURL + ")"
		}
		if r.Phone != "" {
			line += " TEL:" + r.Phone
		}
		doc.AddParagraph(line)
	}

	tmp, err := os.CreateTemp("", "prospect-summary-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := doc.WriteFile(tmpPath); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	return os.ReadFile(tmpPath)
}
