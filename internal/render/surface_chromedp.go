package render

import (
	"context"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeProvider supplies chromedp-backed surfaces. Each Acquire starts
// a fresh tab context sized to a fixed viewport at 2x device scale.
type ChromeProvider struct {
	Width  int64
	Height int64
	Scale  float64
}

// NewChromeProvider returns a provider with the stock card viewport.
func NewChromeProvider() *ChromeProvider {
	return &ChromeProvider{Width: 480, Height: 960, Scale: 2.0}
}

// Acquire starts a browser tab and prepares the viewport. The returned
// surface owns the tab; Close tears it down along with its allocator.
func (p *ChromeProvider) Acquire(ctx context.Context) (Surface, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	release := func() {
		cancelTab()
		cancelAlloc()
	}

	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(p.Width, p.Height, chromedp.EmulateScale(p.Scale)),
	)
	if err != nil {
		release()
		return nil, err
	}
	return &chromeSurface{tab: tabCtx, release: release}, nil
}

type chromeSurface struct {
	tab     context.Context
	release func()
}

// joinContext derives a context from parent that is additionally
// cancelled when trigger is cancelled. The returned stop func detaches
// the watcher and cancels the derived context.
func joinContext(parent, trigger context.Context) (context.Context, context.CancelFunc) {
	joined, cancel := context.WithCancel(parent)
	detach := context.AfterFunc(trigger, cancel)
	return joined, func() {
		detach()
		cancel()
	}
}

// run executes actions against the surface's tab. chromedp actions must
// run on the tab context, so the caller's per-call cancellation is
// joined into it rather than replacing it.
func (s *chromeSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, stop := joinContext(s.tab, ctx)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// SetContent replaces the document and waits for it to become ready.
// All card assets are inlined as data URIs, so document ready is
// equivalent to fully settled.
func (s *chromeSurface) SetContent(ctx context.Context, html string) error {
	return s.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *chromeSurface) HasElement(ctx context.Context, selector string) (bool, error) {
	var nodes []*cdp.Node
	err := s.run(ctx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

func (s *chromeSurface) ScreenshotElement(ctx context.Context, selector string) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromeSurface) Close(ctx context.Context) error {
	s.release()
	return nil
}
