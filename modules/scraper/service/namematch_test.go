package service

import "testing"

func TestNameMatches(t *testing.T) {
	cases := []struct {
		name            string
		candidate       string
		title           string
		siteName        string
		sectionText     string
		bodyText        string
		want            bool
	}{
		{
			name:      "matches via title",
			candidate: "株式会社サンプル",
			title:     "株式会社サンプル ｜ コーポレートサイト",
			want:      true,
		},
		{
			name:      "matches via og:site_name",
			candidate: "株式会社サンプル",
			siteName:  "サンプル",
			want:      true,
		},
		{
			name:        "matches via header/footer section text",
			candidate:   "株式会社サンプル",
			sectionText: "Copyright 株式会社サンプル",
			want:        true,
		},
		{
			name:     "matches via body text for 3+ char names",
			candidate: "サンプル商事株式会社",
			bodyText:  "私たちサンプル商事は東京の会社です",
			want:      true,
		},
		{
			name:      "short candidate name skips the check and accepts",
			candidate: "A株式会社",
			title:     "無関係なサイト",
			want:      true,
		},
		{
			name:      "symmetric fallback: page title is a substring of the candidate name",
			candidate: "サンプル株式会社グループ",
			title:     "サンプル",
			want:      true,
		},
		{
			name:      "no evidence anywhere rejects",
			candidate: "アルファ商事株式会社",
			title:     "ベータ工業株式会社",
			bodyText:  "ベータ工業は創業50年の会社です",
			want:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NameMatches(tc.candidate, tc.title, tc.siteName, tc.sectionText, tc.bodyText)
			if got != tc.want {
				t.Errorf("NameMatches(%q) = %v, want %v", tc.candidate, got, tc.want)
			}
		})
	}
}
