package service

import "testing"

func TestNormalizeCompanyName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pipe suffix dropped, keeps fragment with marker",
			in:   "株式会社〇〇｜公式サイト",
			want: "株式会社〇〇",
		},
		{
			name: "parenthetical annotation removed",
			in:   "株式会社LIG(リグ)",
			want: "株式会社LIG",
		},
		{
			name: "official-homepage suffix stripped",
			in:   "株式会社〇〇のホームページ",
			want: "株式会社〇〇",
		},
		{
			name: "full-width letters folded and spaced letters collapsed",
			in:   "Ｓ ｋ ｙ株式会社",
			want: "Sky株式会社",
		},
		{
			name: "leading boilerplate prefix stripped",
			in:   "沿革：〇〇株式会社",
			want: "〇〇株式会社",
		},
		{
			name: "pipe-delimited descriptor dropped",
			in:   "Idealogical Japan合同会社 | ITコンサルティング",
			want: "Idealogical Japan合同会社",
		},
		{
			name: "short legitimate name with leading spaced letters untouched by clause extraction",
			in:   "S k y株式会社",
			want: "Sky株式会社",
		},
		{
			name: "bare corporate form after normalization collapses to empty",
			in:   "｜株式会社",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCompanyName(tc.in)
			if got != tc.want {
				t.Errorf("NormalizeCompanyName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeCompanyName_IsIdempotent(t *testing.T) {
	inputs := []string{
		"株式会社〇〇｜公式サイト",
		"株式会社LIG(リグ)",
		"Ｓ ｋ ｙ株式会社",
		"沿革：〇〇株式会社",
		"普通の株式会社サンプル",
	}

	for _, in := range inputs {
		once := NormalizeCompanyName(in)
		twice := NormalizeCompanyName(once)
		if once != twice {
			t.Errorf("normalization not idempotent: NormalizeCompanyName(%q) = %q, but normalizing again gives %q", in, once, twice)
		}
	}
}
