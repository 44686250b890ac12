package render

import (
	"context"
	"errors"
	"fmt"

	"hcrm/internal/card"
	"hcrm/internal/logger"
)

// cardSelector locates the card root element in the rendered document.
const cardSelector = ".main-card"

// ErrElementNotFound is returned when the card root cannot be located
// after the document has loaded.
var ErrElementNotFound = errors.New("渲染错误：未找到卡片元素")

// Surface is the narrow page/tab capability the DOM backend needs from
// its external provider.
type Surface interface {
	SetContent(ctx context.Context, html string) error
	HasElement(ctx context.Context, selector string) (bool, error)
	ScreenshotElement(ctx context.Context, selector string) ([]byte, error)
	Close(ctx context.Context) error
}

// SurfaceProvider acquires a fresh Surface per request. Any pooling or
// serialization of the underlying browser is the provider's concern.
type SurfaceProvider interface {
	Acquire(ctx context.Context) (Surface, error)
}

// DOMRenderer renders the card by loading a styled document into a
// browser surface and screenshotting the card root element.
type DOMRenderer struct {
	provider SurfaceProvider
	log      *logger.Logger
}

// NewDOMRenderer returns a DOMRenderer over provider.
func NewDOMRenderer(provider SurfaceProvider) *DOMRenderer {
	return &DOMRenderer{
		provider: provider,
		log:      logger.PackageLogger("RENDER", "🎨 RENDER"),
	}
}

// Render builds the card document, loads it into a freshly acquired
// surface and captures the card element. The surface is released on
// every exit path.
func (r *DOMRenderer) Render(ctx context.Context, data card.Data, assets AssetSet, opts Options) ([]byte, error) {
	doc, err := buildDocument(data, assets, opts)
	if err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}

	surface, err := r.provider.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}
	defer func() {
		if cerr := surface.Close(ctx); cerr != nil {
			r.log.Warn("Surface close failed: %v", cerr)
		}
	}()

	if err := surface.SetContent(ctx, doc); err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}

	found, err := surface.HasElement(ctx, cardSelector)
	if err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}
	if !found {
		return nil, ErrElementNotFound
	}

	buf, err := surface.ScreenshotElement(ctx, cardSelector)
	if err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}
	return buf, nil
}
