package querypool

// CorporateFormMarkers are the legal-entity-form tokens, the same list as
// modules/search/data's copy (not imported across module boundaries,
// since each module owns its own small constant table per the teacher's
// per-module style). The cleanser's list holds only the Japanese forms.
var CorporateFormMarkers = []string{
	"株式会社", "有限会社", "合同会社", "合名会社", "合資会社",
	"Inc.", "Co., Ltd.", "Ltd.", "LLC", "LLP",
}

// attributeSuffixes are appended to region x industry pairs to widen the
// query pool: corporate-form markers, scale markers, and listing markers.
var attributeSuffixes = []string{
	"株式会社", "有限会社", "合同会社",
	"中小企業", "大手", "優良企業",
	"上場企業", "未上場",
}

// listKeywords pair with a bare region to produce directory-style queries.
var listKeywords = []string{"会社一覧", "企業リスト", "企業一覧"}
