package service

import (
	"encoding/json"
	"fmt"
	"strings"

	searchmodel "github.com/yamada-labo/prospectline/modules/search/model"
)

// systemPrompt demands normalized legal-form output only, explicit
// exclusion of non-company noise, URL-to-homepage normalization, and a
// strict JSON envelope — the batch contract of §4.3.
const systemPrompt = `あなたは企業データクレンジングの専門家です。

## タスク
検索結果から営業先になりうる民間企業の情報のみを抽出・正規化してください。
品質を最優先にし、無効なデータは必ず除外してください。

## 処理ルール
1. 企業名は正式な法人名のみを出力する。サイト名・キャッチコピー・カッコ書き・パイプ区切りの飾りは全て削除する。
2. 以下は必ず除外する: 協会・連盟・団体、メディア・出版、学校・講座、まとめ記事・比較サイト・求人サイト、政府・自治体、法人格のない名称。
3. URLはサブページではなくトップページに正規化する。
4. 同一ドメインはバッチ内で1件だけ残す。

## 出力形式
必ず以下のJSON形式のみで出力してください（説明文は不要）:
{
  "cleaned_companies": [
    {"company_name": "株式会社〇〇", "url": "https://example.co.jp/", "domain": "example.co.jp", "relevance_score": 0.95}
  ],
  "valid_count": 1,
  "excluded_count": 0
}`

type promptCandidate struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// cleansedEnvelope is the strict JSON response contract demanded of the
// batch call.
type cleansedEnvelope struct {
	CleanedCompanies []cleansedEntry `json:"cleaned_companies"`
	ValidCount       int             `json:"valid_count"`
	ExcludedCount    int             `json:"excluded_count"`
}

type cleansedEntry struct {
	CompanyName    string  `json:"company_name"`
	URL            string  `json:"url"`
	Domain         string  `json:"domain"`
	RelevanceScore float64 `json:"relevance_score"`
}

// buildUserPrompt renders the batch of candidates, the search keyword,
// and at most 100 existing domains to exclude into the user turn.
func buildUserPrompt(batch []*searchmodel.Candidate, keyword string, existingDomains []string) (string, error) {
	input := make([]promptCandidate, len(batch))
	for i, c := range batch {
		input[i] = promptCandidate{Index: i + 1, Title: c.CompanyName, URL: c.URL, Domain: c.Domain}
	}

	dataJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal batch: %w", err)
	}

	var existingSection string
	if len(existingDomains) > 0 {
		capped := existingDomains
		if len(capped) > 100 {
			capped = capped[:100]
		}
		existingJSON, err := json.Marshal(capped)
		if err != nil {
			return "", fmt.Errorf("marshal existing domains: %w", err)
		}
		existingSection = fmt.Sprintf("## 既存企業ドメイン（必ず除外）\n%s\n\n", existingJSON)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## 検索キーワード\n%s\n\n", keyword)
	b.WriteString(existingSection)
	fmt.Fprintf(&b, "## 検索結果データ（%d件）\n%s\n\n", len(input), dataJSON)
	b.WriteString("上記の検索結果をクレンジングし、有効な企業リストをJSON形式で出力してください。")

	return b.String(), nil
}

// parseEnvelope decodes the assistant's raw text as the strict JSON
// envelope, tolerating a fenced ```json code block around it.
func parseEnvelope(raw string) (*cleansedEnvelope, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var envelope cleansedEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("parse cleanse envelope: %w", err)
	}
	return &envelope, nil
}
