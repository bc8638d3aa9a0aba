package artifact

import "testing"

func TestQuoteTextOnlyWhenNeeded(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cat", "cat"},
		{"", `""`},
		{"  ", `"  "`},
		{"a,b", `"a,b"`},
		{`a"b`, `"a""b"`},
		{"a\nb", "\"a\nb\""},
	}
	for _, c := range cases {
		if got := quoteText(c.in); got != c.want {
			t.Errorf("quoteText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLooksLikeHeaderDetection(t *testing.T) {
	if !looksLikeHeader([]string{"token", "repetitions"}) {
		t.Error("expected header row to be detected")
	}
	if looksLikeHeader([]string{"cat", "5"}) {
		t.Error("data row incorrectly detected as header")
	}
}
