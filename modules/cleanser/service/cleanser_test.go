package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	searchmodel "github.com/yamada-labo/prospectline/modules/search/model"
)

type fakeChatCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no more canned responses")
}

func candidates(n int) []*searchmodel.Candidate {
	out := make([]*searchmodel.Candidate, n)
	for i := range out {
		out[i] = &searchmodel.Candidate{CompanyName: "候補", URL: "https://example.co.jp/", Domain: "example.co.jp"}
	}
	return out
}

func TestCleanser_Cleanse_ParsesEnvelopeAndNormalizes(t *testing.T) {
	chat := &fakeChatCompleter{responses: []string{
		`{"cleaned_companies":[{"company_name":"株式会社〇〇｜公式サイト","url":"https://alpha.co.jp/","domain":"alpha.co.jp","relevance_score":0.9}],"valid_count":1,"excluded_count":0}`,
	}}
	c := NewCleanser(chat, 50, 2, nil)

	result := c.Cleanse(context.Background(), candidates(1), "東京 IT企業", nil)

	require.Len(t, result, 1)
	assert.Equal(t, "株式会社〇〇", result[0].CompanyName)
	assert.Equal(t, "alpha.co.jp", result[0].Domain)
}

func TestCleanser_Cleanse_DropsInvalidEntries(t *testing.T) {
	chat := &fakeChatCompleter{responses: []string{
		`{"cleaned_companies":[
			{"company_name":"テクノプロ","url":"https://noform.example.com/","domain":"noform.example.com"},
			{"company_name":"株式会社サンプル","url":"https://sample.co.jp/","domain":"sample.co.jp"}
		],"valid_count":2,"excluded_count":0}`,
	}}
	c := NewCleanser(chat, 50, 2, nil)

	result := c.Cleanse(context.Background(), candidates(2), "東京 IT企業", nil)

	require.Len(t, result, 1)
	assert.Equal(t, "株式会社サンプル", result[0].CompanyName)
}

func TestCleanser_Cleanse_DedupsWithinBatch(t *testing.T) {
	chat := &fakeChatCompleter{responses: []string{
		`{"cleaned_companies":[
			{"company_name":"株式会社サンプル","url":"https://sample.co.jp/","domain":"sample.co.jp"},
			{"company_name":"株式会社サンプル２","url":"https://sample.co.jp/about","domain":"sample.co.jp"}
		],"valid_count":2,"excluded_count":0}`,
	}}
	c := NewCleanser(chat, 50, 2, nil)

	result := c.Cleanse(context.Background(), candidates(2), "東京 IT企業", nil)

	assert.Len(t, result, 1)
}

func TestCleanser_Cleanse_RetriesThenSucceeds(t *testing.T) {
	chat := &fakeChatCompleter{
		errs:      []error{errors.New("transport error"), nil},
		responses: []string{"", `{"cleaned_companies":[{"company_name":"株式会社サンプル","url":"https://sample.co.jp/","domain":"sample.co.jp"}]}`},
	}
	c := NewCleanser(chat, 50, 2, nil)

	result := c.Cleanse(context.Background(), candidates(1), "東京 IT企業", nil)

	require.Len(t, result, 1)
	assert.Equal(t, 2, chat.calls)
}

func TestCleanser_Cleanse_DropsEntireBatchAfterRetriesExhausted(t *testing.T) {
	chat := &fakeChatCompleter{errs: []error{
		errors.New("e1"), errors.New("e2"), errors.New("e3"),
	}}
	c := NewCleanser(chat, 50, 2, nil)

	result := c.Cleanse(context.Background(), candidates(3), "東京 IT企業", nil)

	assert.Empty(t, result)
	assert.Equal(t, 3, chat.calls) // 1 initial attempt + 2 retries, never falls back to raw input
}

func TestCleanser_Cleanse_SplitsIntoBatches(t *testing.T) {
	chat := &fakeChatCompleter{responses: []string{
		`{"cleaned_companies":[{"company_name":"株式会社サンプルA","url":"https://a.co.jp/","domain":"a.co.jp"}]}`,
		`{"cleaned_companies":[{"company_name":"株式会社サンプルB","url":"https://b.co.jp/","domain":"b.co.jp"}]}`,
	}}
	c := NewCleanser(chat, 1, 0, nil)

	result := c.Cleanse(context.Background(), candidates(2), "東京 IT企業", nil)

	require.Len(t, result, 2)
	assert.Equal(t, 2, chat.calls)
}
