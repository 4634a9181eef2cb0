package querypool

import "strings"

// industryVariant pairs a substring key (matched against the parsed
// industry phrase) with the phrase variants that key expands to.
type industryVariant struct {
	Key      string
	Variants []string
}

var industryVariantTable = []industryVariant{
	{Key: "IT", Variants: []string{"IT企業", "IT会社", "ソフトウェア会社", "システム開発会社", "SIer"}},
	{Key: "システム", Variants: []string{"システム開発会社", "システムインテグレーター", "IT企業"}},
	{Key: "製造", Variants: []string{"製造業", "メーカー", "工場"}},
	{Key: "建設", Variants: []string{"建設会社", "工務店", "ゼネコン"}},
	{Key: "不動産", Variants: []string{"不動産会社", "不動産仲介", "デベロッパー"}},
	{Key: "物流", Variants: []string{"物流会社", "運送会社", "倉庫業"}},
	{Key: "広告", Variants: []string{"広告代理店", "マーケティング会社", "PR会社"}},
	{Key: "人材", Variants: []string{"人材紹介会社", "人材派遣会社", "採用支援会社"}},
	{Key: "医療", Variants: []string{"医療法人", "クリニック", "病院"}},
	{Key: "飲食", Variants: []string{"飲食店", "レストラン", "飲食チェーン"}},
	{Key: "小売", Variants: []string{"小売業", "小売店", "販売会社"}},
	{Key: "金融", Variants: []string{"金融機関", "投資会社", "証券会社"}},
	{Key: "コンサル", Variants: []string{"コンサルティング会社", "経営コンサル", "戦略コンサル"}},
}

// genericIndustryFallback is used when the parsed industry matches no
// entry in the variant table above.
var genericIndustryFallback = []string{"企業", "会社"}

// ExpandIndustry returns the variant phrases for a parsed industry string,
// matched by substring against the variant table, plus the industry
// itself. Falls back to a small generic list when nothing matches.
func ExpandIndustry(industry string) []string {
	seen := map[string]struct{}{industry: {}}
	variants := []string{industry}

	for _, entry := range industryVariantTable {
		if strings.Contains(industry, entry.Key) {
			for _, v := range entry.Variants {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					variants = append(variants, v)
				}
			}
		}
	}

	if len(variants) == 1 {
		for _, v := range genericIndustryFallback {
			combined := industry + v
			if _, ok := seen[combined]; !ok {
				seen[combined] = struct{}{}
				variants = append(variants, combined)
			}
		}
	}

	return variants
}
