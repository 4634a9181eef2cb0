package service

import "testing"

func TestIsInvalidCompanyName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"too short", "AB", true},
		{"too long", "ああああああああああああああああああああああああああああああああああああああああ株式会社", true},
		{"stray pipe survives normalization", "株式会社〇〇｜別サイト", true},
		{"no corporate form at all", "テクノプロ", true},
		{"association marker", "一般社団法人企業情報化協会", true},
		{"media marker", "週刊ダイヤモンド", true},
		{"education marker", "ITエンジニア養成講座", true},
		{"roundup marker", "おすすめIT企業10選", true},
		{"TOP-N roundup marker", "TOP10IT企業株式会社", true},
		{"catchphrase short tail", "WebマーケティングならWEB", true},
		{"catchphrase verb phrase", "経営を支援する合同会社", true},
		{"recruitment marker", "転職エージェント株式会社", true},
		{"punctuation sentence", "株式会社〇〇は、東京の会社です。", true},
		{"ordinary valid company name", "株式会社サンプル", false},
		{"ordinary valid company name suffix-first", "サンプル株式会社", false},
		{"just-above-minimum-length name with corporate form passes", "X社株式会社", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsInvalidCompanyName(tc.in)
			if got != tc.want {
				t.Errorf("IsInvalidCompanyName(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
