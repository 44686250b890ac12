package render

import (
	"context"
	"strings"
	"testing"
)

// A few valid-looking but unparseable bytes; the vector backend must
// reject them before layout, not crash inside the rasterizer.
var bogusFont = []byte("OTTO not really a font")

func TestVectorRenderMissingFontIsHardFailure(t *testing.T) {
	cases := []struct {
		name   string
		assets AssetSet
	}{
		{"all missing", AssetSet{}},
		{"display missing", AssetSet{FontHeading: bogusFont, FontBody: bogusFont}},
		{"heading missing", AssetSet{FontDisplay: bogusFont, FontBody: bogusFont}},
		{"body missing", AssetSet{FontDisplay: bogusFont, FontHeading: bogusFont}},
	}

	r := NewVectorRenderer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := r.Render(context.Background(), testData(), tc.assets, Options{})
			if err == nil {
				t.Fatal("expected a missing-font error")
			}
			if !strings.Contains(err.Error(), "缺少字体文件") {
				t.Fatalf("expected the missing-font message; got %v", err)
			}
			if buf != nil {
				t.Fatal("expected no image bytes on font failure")
			}
		})
	}
}

func TestVectorRenderCorruptFontIsHardFailure(t *testing.T) {
	r := NewVectorRenderer()
	assets := AssetSet{FontDisplay: bogusFont, FontHeading: bogusFont, FontBody: bogusFont}

	buf, err := r.Render(context.Background(), testData(), assets, Options{})
	if err == nil {
		t.Fatal("expected a corrupt-font error")
	}
	if !strings.Contains(err.Error(), "字体文件损坏") {
		t.Fatalf("expected the corrupt-font message; got %v", err)
	}
	if buf != nil {
		t.Fatal("expected no image bytes")
	}
}

func TestVectorRenderSVGSharesFontPreflight(t *testing.T) {
	r := NewVectorRenderer()
	if _, err := r.RenderSVG(context.Background(), testData(), AssetSet{}, Options{}); err == nil {
		t.Fatal("expected the SVG path to reject missing fonts too")
	}
}

func TestFlexColumnLayoutMath(t *testing.T) {
	root := &flexNode{
		dir:     column,
		gap:     5,
		padding: edges{top: 10, bottom: 10},
		children: []*flexNode{
			{height: 20},
			{height: 30},
			{height: 15},
		},
	}

	// 10 + 20 + 5 + 30 + 5 + 15 + 10
	if got := root.measureNode(100); got != 95 {
		t.Fatalf("column height: expected 95; got %v", got)
	}
}

func TestFlexRowHeightIsTallestChild(t *testing.T) {
	root := &flexNode{
		dir: row,
		gap: 10,
		children: []*flexNode{
			{width: 50, height: 14},
			{grow: true, height: 30},
			{width: 50, height: 18},
		},
	}

	if got := root.measureNode(300); got != 30 {
		t.Fatalf("row height: expected 30; got %v", got)
	}
}

func TestFlexFixedHeightIgnoresChildren(t *testing.T) {
	root := &flexNode{
		height: 40,
		dir:    column,
		children: []*flexNode{
			{height: 100},
		},
	}
	if got := root.measureNode(100); got != 40 {
		t.Fatalf("fixed height: expected 40; got %v", got)
	}
}

func TestParsePercent(t *testing.T) {
	cases := map[string]float64{
		"60.0":    60,
		"0.0":     0,
		"100.0":   100,
		"garbage": 0,
	}
	for in, want := range cases {
		if got := parsePercent(in); got != want {
			t.Fatalf("parsePercent(%q): expected %v; got %v", in, want, got)
		}
	}
}
