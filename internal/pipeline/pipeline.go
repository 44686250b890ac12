// Package pipeline is the single inbound entry point the command layer
// calls: sample metrics, fetch a quote, assemble the card record and
// render it with the selected backend. The chain is strictly linear;
// nothing is retried.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hcrm/internal/assets"
	"hcrm/internal/card"
	"hcrm/internal/config"
	"hcrm/internal/hitokoto"
	"hcrm/internal/logger"
	"hcrm/internal/render"
	"hcrm/internal/sysinfo"
)

var log = logger.PackageLogger("PIPELINE", "🖼️ PIPELINE")

// Request carries the per-invocation options on top of the resolved
// config.
type Request struct {
	// ModeOverride beats the configured render mode when non-empty.
	ModeOverride string

	// FeedbackOnly skips rendering and returns a text summary instead.
	FeedbackOnly bool

	// WantSVG additionally emits the vector scene as SVG (vector mode
	// only).
	WantSVG bool

	Config *config.Config

	// Source substitutes the host metrics source; nil means real
	// hardware counters.
	Source sysinfo.Source

	// Provider substitutes the DOM rendering surface provider; nil
	// means a fresh headless-Chrome tab per request.
	Provider render.SurfaceProvider

	// QuoteEndpoint substitutes the quote service; empty means the
	// public hitokoto endpoint.
	QuoteEndpoint string
}

// Response is the pipeline outcome: either an image (plus optional SVG)
// or a feedback string.
type Response struct {
	Image    []byte
	SVG      []byte
	Feedback string
}

// Generate runs the full pipeline for one request.
func Generate(ctx context.Context, req Request) (*Response, error) {
	cfg := req.Config
	if cfg == nil {
		cfg = config.Default()
	}

	source := req.Source
	if source == nil {
		source = sysinfo.HostSource()
	}
	stats, err := sysinfo.NewSampler(source).Sample(ctx)
	if err != nil {
		return nil, fmt.Errorf("采集系统状态失败：%v", err)
	}

	quote := hitokoto.New(req.QuoteEndpoint).Fetch(ctx, parseCategories(cfg.HitokotoTypes))

	data := card.Assemble(time.Now(), stats, quote, cfg.WeekendQuotes)

	if req.FeedbackOnly {
		return &Response{Feedback: feedbackText(data)}, nil
	}

	mode := cfg.RenderMode
	if req.ModeOverride != "" {
		mode = req.ModeOverride
	}
	parsedMode, err := render.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	assetSet := resolveAssets(cfg)
	opts := render.Options{Footer: cfg.Footer}

	provider := req.Provider
	if provider == nil {
		provider = render.NewChromeProvider()
	}
	backend, err := render.Select(parsedMode, provider)
	if err != nil {
		return nil, err
	}

	image, err := backend.Render(ctx, data, assetSet, opts)
	if err != nil {
		return nil, err
	}
	log.Success("Card rendered via %s backend (%d bytes)", parsedMode, len(image))

	resp := &Response{Image: image}
	if req.WantSVG {
		if vec, ok := backend.(*render.VectorRenderer); ok {
			svg, err := vec.RenderSVG(ctx, data, assetSet, opts)
			if err != nil {
				return nil, err
			}
			resp.SVG = svg
		} else {
			log.Warn("SVG output requested but the %s backend has no vector scene", parsedMode)
		}
	}
	return resp, nil
}

// parseCategories keeps the valid codes and warns about the rest.
// An empty result falls back to the anime category.
func parseCategories(codes []string) []hitokoto.Category {
	var cats []hitokoto.Category
	for _, code := range codes {
		cat, err := hitokoto.ParseCategory(code)
		if err != nil {
			log.Warn("Skipping invalid hitokoto category %q", code)
			continue
		}
		cats = append(cats, cat)
	}
	if len(cats) == 0 {
		cats = []hitokoto.Category{hitokoto.CategoryAnime}
	}
	return cats
}

// resolveAssets resolves the four logical assets. Missing assets are
// handed to the backend as absent; the DOM backend degrades, the vector
// backend rejects missing fonts itself.
func resolveAssets(cfg *config.Config) render.AssetSet {
	resolver := assets.NewResolver(cfg.AssetDir)
	load := func(name assets.Name, override string) []byte {
		data, err := resolver.Resolve(name, override)
		if err != nil {
			if errors.Is(err, assets.ErrNotFound) {
				log.Warn("Asset %s unresolved", name)
			} else {
				log.Warn("Asset %s unreadable: %v", name, err)
			}
			return nil
		}
		return data
	}
	return render.AssetSet{
		Background:  load(assets.Background, cfg.BackgroundImage),
		FontDisplay: load(assets.FontDisplay, cfg.FontAnurati),
		FontHeading: load(assets.FontHeading, cfg.FontChiMing),
		FontBody:    load(assets.FontBody, cfg.FontZcool),
	}
}

// feedbackText is the text rendition of the card for feedback-only
// requests.
func feedbackText(data card.Data) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s · %s\n", data.DateText, data.TimeText, data.LunarText)
	fmt.Fprintf(&b, "%s\n", data.MoodGreeting)
	fmt.Fprintf(&b, "CPU %s%%（%s）\n", data.Stats.CPUPercent, data.Stats.CPUModel)
	fmt.Fprintf(&b, "RAM %s%%（%s）\n", data.Stats.RAMPercent, data.Stats.OS)
	fmt.Fprintf(&b, "“ %s ”\n", data.Quote)
	fmt.Fprintf(&b, "#%s", data.ContentHash)
	return b.String()
}
