package service

import (
	"bytes"
	"encoding/csv"

	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
)

// csvHeader is the fixed column order every exported list uses.
var csvHeader = []string{"企業名", "URL", "お問い合わせURL", "電話番号", "ドメイン"}

// utf8BOM precedes the CSV body so Excel on Windows opens it as UTF-8
// instead of guessing Shift-JIS.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BuildCSV renders records as a UTF-8, BOM-prefixed CSV artifact.
func BuildCSV(records []*scrapermodel.EnrichedRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{r.CompanyName, r.URL, r.ContactURL, r.Phone, r.Domain}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
