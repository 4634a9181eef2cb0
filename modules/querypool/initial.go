package querypool

// initialSuffixes are the fixed patterns appended to the raw keyword for
// round 0: corporate forms, synonyms, listing phrases, and a site filter.
// Kept as a flat literal list, same shape as the original's QUERY_PATTERNS.
var initialSuffixes = []string{
	"株式会社",
	"有限会社",
	"合同会社",
	"会社",
	"企業",
	"法人",
	"Inc",
	"Co.,Ltd",
	"本社",
	"公式サイト",
	"公式ホームページ",
	"会社概要",
	"会社一覧",
	"企業一覧",
	"企業リスト",
	"優良企業",
	"中小企業",
	"大手企業",
	"おすすめ会社",
	"site:co.jp",
	"株式会社 site:co.jp",
	"一覧 site:co.jp",
	"求人",
	"採用",
	"連絡先",
}

// InitialQueries generates the ~25 fixed-pattern queries used for round 0,
// one per suffix, in suffix order (not pool-shuffled — the pool shuffle
// only applies to the retry-round cross-product queries).
func InitialQueries(keyword string) []string {
	queries := make([]string, 0, len(initialSuffixes))
	for _, suffix := range initialSuffixes {
		queries = append(queries, keyword+" "+suffix)
	}
	return queries
}
