package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
)

func TestBuildCSV_HasBOMAndHeader(t *testing.T) {
	records := []*scrapermodel.EnrichedRecord{
		{CompanyName: "株式会社サンプル", URL: "https://sample.co.jp/", ContactURL: "https://sample.co.jp/contact/", Phone: "03-1234-5678", Domain: "sample.co.jp"},
	}

	out, err := BuildCSV(records)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, utf8BOM))

	reader := csv.NewReader(strings.NewReader(string(bytes.TrimPrefix(out, utf8BOM))))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"株式会社サンプル", "https://sample.co.jp/", "https://sample.co.jp/contact/", "03-1234-5678", "sample.co.jp"}, rows[1])
}

func TestBuildCSV_EmptyRecordsStillHasHeader(t *testing.T) {
	out, err := BuildCSV(nil)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(bytes.TrimPrefix(out, utf8BOM))))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}
