package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hcrm/internal/card"
	"hcrm/internal/sysinfo"
)

func testData() card.Data {
	return card.Data{
		Stats: sysinfo.Stats{
			CPUPercent: "60.0",
			RAMPercent: "42.5",
			CPUModel:   "TestCPU 9000",
			OS:         "linux 6.1.0",
		},
		Quote:           "生活明朗，万物可爱。",
		DateText:        "2026/09/01",
		TimeText:        "12:30:45",
		TimestampMillis: 1788400245000,
		LunarText:       "农历丙午年七月二十",
		MoodGreeting:    "平平无奇的工作日 · 中午好",
		ContentHash:     "0123456789ABCDEF",
	}
}

type fakeSurface struct {
	hasElement    bool
	setContentErr error
	hasErr        error
	shotErr       error

	content string
	closed  bool
}

func (s *fakeSurface) SetContent(ctx context.Context, html string) error {
	s.content = html
	return s.setContentErr
}

func (s *fakeSurface) HasElement(ctx context.Context, selector string) (bool, error) {
	return s.hasElement, s.hasErr
}

func (s *fakeSurface) ScreenshotElement(ctx context.Context, selector string) ([]byte, error) {
	if s.shotErr != nil {
		return nil, s.shotErr
	}
	return []byte("png-bytes"), nil
}

func (s *fakeSurface) Close(ctx context.Context) error {
	s.closed = true
	return nil
}

type fakeProvider struct {
	surface    *fakeSurface
	acquireErr error
}

func (p *fakeProvider) Acquire(ctx context.Context) (Surface, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.surface, nil
}

func TestDOMRenderHappyPath(t *testing.T) {
	surface := &fakeSurface{hasElement: true}
	r := NewDOMRenderer(&fakeProvider{surface: surface})

	buf, err := r.Render(context.Background(), testData(), AssetSet{}, Options{Footer: "Powered By 狼狼"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf) != "png-bytes" {
		t.Fatalf("unexpected image bytes %q", buf)
	}
	if !surface.closed {
		t.Fatal("surface leaked on success path")
	}
	if !strings.Contains(surface.content, "main-card") {
		t.Fatal("document missing card root")
	}
}

func TestDOMRenderElementNotFound(t *testing.T) {
	surface := &fakeSurface{hasElement: false}
	r := NewDOMRenderer(&fakeProvider{surface: surface})

	buf, err := r.Render(context.Background(), testData(), AssetSet{}, Options{})
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected element-not-found; got %v", err)
	}
	if buf != nil {
		t.Fatal("expected no image bytes")
	}
	if !surface.closed {
		t.Fatal("surface leaked on the element-not-found path")
	}
}

func TestDOMRenderEngineErrorsAreWrappedAndReleased(t *testing.T) {
	cases := []struct {
		name    string
		surface *fakeSurface
	}{
		{"set content", &fakeSurface{setContentErr: errors.New("tab crashed")}},
		{"element query", &fakeSurface{hasErr: errors.New("dom gone")}},
		{"screenshot", &fakeSurface{hasElement: true, shotErr: errors.New("capture failed")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewDOMRenderer(&fakeProvider{surface: tc.surface})
			_, err := r.Render(context.Background(), testData(), AssetSet{}, Options{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "生成失败") {
				t.Fatalf("engine error not wrapped as user message: %v", err)
			}
			if !tc.surface.closed {
				t.Fatal("surface leaked on an engine-error path")
			}
		})
	}
}

func TestDOMRenderAcquireFailure(t *testing.T) {
	r := NewDOMRenderer(&fakeProvider{acquireErr: errors.New("no browser")})
	if _, err := r.Render(context.Background(), testData(), AssetSet{}, Options{}); err == nil {
		t.Fatal("expected an error when the surface cannot be acquired")
	}
}

func TestBuildDocumentFields(t *testing.T) {
	data := testData()
	doc, err := buildDocument(data, AssetSet{FontBody: []byte("ttf")}, Options{Footer: "Powered By 狼狼"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		data.ContentHash,
		data.LunarText,
		data.MoodGreeting,
		"width: 60.0%",
		"60.0%",
		"Timestamp: 1788400245000",
		"data:font/ttf;base64,",
		"Powered By 狼狼",
		"TestCPU 9000",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestBuildDocumentEscapesQuote(t *testing.T) {
	data := testData()
	data.Quote = `<script>alert("x")</script>`

	doc, err := buildDocument(data, AssetSet{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "<script>alert") {
		t.Fatal("quote text was not escaped")
	}
}
