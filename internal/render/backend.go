// Package render turns an assembled card record into PNG bytes through
// one of two interchangeable backends: a DOM screenshot of a styled
// document in a browser surface, or an in-process flexbox layout painted
// to a vector scene and rasterized. Identical data must produce visually
// equivalent (not byte-identical) output from either.
package render

import (
	"context"
	"fmt"

	"hcrm/internal/card"
)

// Mode selects a render backend.
type Mode string

const (
	ModeDOM    Mode = "dom"
	ModeVector Mode = "vector"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDOM, ModeVector:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("未知渲染模式：%q（可选 dom / vector）", s)
	}
}

// AssetSet carries the resolved asset bytes a backend composites.
// A nil slice means the asset is absent.
type AssetSet struct {
	Background  []byte
	FontDisplay []byte
	FontHeading []byte
	FontBody    []byte
}

// Options are the per-render presentation settings.
type Options struct {
	Title  string
	Footer string
}

// Backend renders an assembled card to PNG bytes.
type Backend interface {
	Render(ctx context.Context, data card.Data, assets AssetSet, opts Options) ([]byte, error)
}

// Select returns the backend for mode. The provider is only used by the
// DOM backend; the vector backend is fully in-process.
func Select(mode Mode, provider SurfaceProvider) (Backend, error) {
	switch mode {
	case ModeDOM:
		return NewDOMRenderer(provider), nil
	case ModeVector:
		return NewVectorRenderer(), nil
	}
	_, err := ParseMode(string(mode))
	return nil, err
}
