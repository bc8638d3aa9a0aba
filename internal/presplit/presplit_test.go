package presplit

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"lowercase", "word", []string{"word"}},
		{"camel", "camelCase", []string{"camel", "Case"}},
		{"acronym", "getHTTPResponseCode", []string{"get", "HTTP", "Response", "Code"}},
		{"all upper", "HTTP", []string{"HTTP"}},
		{"leading upper word", "Word", []string{"Word"}},
		{"trailing acronym", "parseJSON", []string{"parse", "JSON"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Split(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Split(%q) = %#v, want %#v", c.in, got, c.want)
			}
		})
	}
}

func TestSplitPartsReconstructInput(t *testing.T) {
	in := "camelCaseWord"
	parts := Split(in)
	joined := ""
	for _, p := range parts {
		joined += p
	}
	if joined != in {
		t.Fatalf("parts do not reconstruct input: %q from %#v", joined, parts)
	}
}
