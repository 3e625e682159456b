package games

import (
	"encoding/json"
	"testing"
)

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{78.456, 78.5},
		{78.449, 78.4},
		{12.25, 12.3},
		{12, 12},
	}
	for _, tc := range cases {
		if got := RoundRating(tc.in); got != tc.want {
			t.Fatalf("RoundRating(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoverURL(t *testing.T) {
	if got := CoverURL("//images.igdb.com/t_thumb/co1.jpg"); got != "https://images.igdb.com/t_thumb/co1.jpg" {
		t.Fatalf("unexpected cover url %q", got)
	}
	if got := CoverURL(""); got != "https://via.placeholder.com/200" {
		t.Fatalf("expected placeholder cover, got %q", got)
	}
}

func TestPriceCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want Price
	}{
		{`19.99`, 19.99},
		{`"4.50"`, 4.5},
		{`null`, 0},
		{`"free"`, 0},
		{`true`, 0},
		{`-3`, 0},
	}
	for _, tc := range cases {
		if got := ParsePrice([]byte(tc.raw)); got != tc.want {
			t.Fatalf("ParsePrice(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDocumentDecodesLenientPrices(t *testing.T) {
	raw := `{"games":[{"name":"A","price":"oops"},{"name":"B","price":"12.5"},{"name":"C","price":7}]}`
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Price{0, 12.5, 7}
	for i, g := range doc.Games {
		if g.Price != want[i] {
			t.Fatalf("game %s price = %v, want %v", g.Name, g.Price, want[i])
		}
	}
}

func TestResolveUnknownIDs(t *testing.T) {
	names := IDNames{4: "Action"}.Resolve([]int64{4, 99})
	if len(names) != 2 || names[0] != "Action" || names[1] != UnknownName {
		t.Fatalf("unexpected names %v", names)
	}
	if got := IDNames(nil).Resolve(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
