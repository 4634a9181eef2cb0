package querypool

import "strings"

// regionSuffixes are administrative-unit endings that mark a token as a
// region even when it is not one of the named entries below (e.g. a ward
// or city name not worth hard-coding).
var regionSuffixes = []string{"都", "道", "府", "県", "市", "区", "町", "村"}

// regionExpansion is the main region plus its sub-regions and the nearby
// regions a prospecting run for it should also cover.
type regionExpansion struct {
	Main   string
	Sub    []string
	Nearby []string
}

// regionTable keys the expansion by every surface form that should
// resolve to it (the main name and common aliases).
var regionTable = map[string]regionExpansion{
	"東京": {
		Main:   "東京",
		Sub:    []string{"新宿", "渋谷", "港区", "千代田区", "中央区", "品川", "丸の内"},
		Nearby: []string{"神奈川", "埼玉", "千葉"},
	},
	"大阪": {
		Main:   "大阪",
		Sub:    []string{"梅田", "難波", "北区", "中央区"},
		Nearby: []string{"京都", "兵庫", "奈良"},
	},
	"名古屋": {
		Main:   "名古屋",
		Sub:    []string{"栄", "名駅", "中区"},
		Nearby: []string{"愛知", "岐阜", "三重"},
	},
	"福岡": {
		Main:   "福岡",
		Sub:    []string{"博多", "天神", "中央区"},
		Nearby: []string{"佐賀", "熊本"},
	},
	"札幌": {
		Main:   "札幌",
		Sub:    []string{"すすきの", "中央区", "大通"},
		Nearby: []string{"北海道", "小樽"},
	},
	"横浜": {
		Main:   "横浜",
		Sub:    []string{"みなとみらい", "関内", "西区"},
		Nearby: []string{"神奈川", "東京", "川崎"},
	},
	"仙台": {
		Main:   "仙台",
		Sub:    []string{"青葉区", "一番町"},
		Nearby: []string{"宮城", "山形"},
	},
	"広島": {
		Main:   "広島",
		Sub:    []string{"中区", "紙屋町"},
		Nearby: []string{"岡山", "山口"},
	},
	"京都": {
		Main:   "京都",
		Sub:    []string{"四条", "烏丸", "中京区"},
		Nearby: []string{"大阪", "滋賀", "奈良"},
	},
	"神戸": {
		Main:   "神戸",
		Sub:    []string{"三宮", "中央区"},
		Nearby: []string{"兵庫", "大阪"},
	},
}

// IsRegion reports whether token names a known region, either by exact
// lookup in the region table or by ending in an administrative suffix.
func IsRegion(token string) bool {
	if _, ok := regionTable[token]; ok {
		return true
	}
	for _, suffix := range regionSuffixes {
		if strings.HasSuffix(token, suffix) && len([]rune(token)) > len([]rune(suffix)) {
			return true
		}
	}
	return false
}

// ExpandRegion returns the main/sub/nearby region set for a parsed region
// token. Unknown regions (matched only via suffix) expand to themselves.
func ExpandRegion(region string) []string {
	if expansion, ok := regionTable[region]; ok {
		all := make([]string, 0, 1+len(expansion.Sub)+len(expansion.Nearby))
		all = append(all, expansion.Main)
		all = append(all, expansion.Sub...)
		all = append(all, expansion.Nearby...)
		return all
	}
	return []string{region}
}
