package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strconv"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"hcrm/internal/assets"
	"hcrm/internal/card"
	"hcrm/internal/logger"
)

const (
	// cardWidth is the logical card width the tree is laid out at.
	cardWidth = 360.0

	// rasterScale is the physical upscale factor applied when the
	// vector scene is rasterized to PNG.
	rasterScale = 2.0
)

// VectorRenderer renders the card without a browser: it lays out a
// flexbox node tree, paints it to a vector scene and rasterizes the
// scene in-process. All three fonts are required; there is no silent
// system-font substitution.
type VectorRenderer struct {
	log *logger.Logger
}

// NewVectorRenderer returns a VectorRenderer.
func NewVectorRenderer() *VectorRenderer {
	return &VectorRenderer{log: logger.PackageLogger("RENDER", "🎨 RENDER")}
}

// Render rasterizes the card scene to PNG at rasterScale times the
// logical width.
func (r *VectorRenderer) Render(ctx context.Context, data card.Data, assetSet AssetSet, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scene, err := r.buildScene(data, assetSet, opts)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(scene, canvas.DPMM(rasterScale), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG emits the same vector scene as an SVG document at the
// logical card width.
func (r *VectorRenderer) RenderSVG(ctx context.Context, data card.Data, assetSet AssetSet, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scene, err := r.buildScene(data, assetSet, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := svg.New(&buf, scene.W, scene.H, nil)
	scene.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("生成失败：%v", err)
	}
	return buf.Bytes(), nil
}

func (r *VectorRenderer) buildScene(data card.Data, assetSet AssetSet, opts Options) (*canvas.Canvas, error) {
	faces, err := loadFaces(assetSet)
	if err != nil {
		return nil, err
	}

	tree := buildTree(data, opts, faces)
	height := tree.measureNode(cardWidth)

	c := canvas.New(cardWidth, height)
	gc := canvas.NewContext(c)
	gc.SetCoordSystem(canvas.CartesianIV)

	r.paintBackground(gc, assetSet.Background, cardWidth, height)

	// Translucent darkening layer over the whole card.
	gc.SetFillColor(color.NRGBA{0, 0, 0, 77})
	gc.DrawPath(0, 0, canvas.Rectangle(cardWidth, height))

	tree.paintNode(gc, 0, 0, cardWidth)
	return c, nil
}

// paintBackground fills the card area and draws the background image
// scaled to cover it, center-cropped. A missing or undecodable image
// degrades to the plain fill.
func (r *VectorRenderer) paintBackground(gc *canvas.Context, jpegBytes []byte, w, h float64) {
	gc.SetFillColor(color.NRGBA{24, 26, 34, 255})
	gc.DrawPath(0, 0, canvas.Rectangle(w, h))

	if len(jpegBytes) == 0 {
		return
	}
	img, err := jpeg.Decode(bytes.NewReader(jpegBytes))
	if err != nil {
		r.log.Warn("Background image undecodable, using plain fill: %v", err)
		return
	}

	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	// Pixels per logical unit such that the image covers the card.
	res := math.Min(iw/w, ih/h)
	drawW := iw / res
	drawH := ih / res
	gc.DrawImage((w-drawW)/2, (h-drawH)/2, img, canvas.Resolution(res))
}

// faceSet holds one font face per text role on the card.
type faceSet struct {
	title  *canvas.FontFace
	lunar  *canvas.FontFace
	clock  *canvas.FontFace
	stamp  *canvas.FontFace
	label  *canvas.FontFace
	info   *canvas.FontFace
	quote  *canvas.FontFace
	footer *canvas.FontFace
	hash   *canvas.FontFace
}

// fontPt converts a CSS-pixel size to the point size canvas expects for
// the same glyph height in canvas units.
func fontPt(px float64) float64 {
	return px * 72.0 / 25.4
}

func loadFaces(assetSet AssetSet) (*faceSet, error) {
	fonts := []struct {
		logical string
		file    string
		data    []byte
	}{
		{"fontDisplay", "Anurati-Regular.otf", assetSet.FontDisplay},
		{"fontHeading", "赤明工业革命SC-Regular.otf", assetSet.FontHeading},
		{"fontBody", "站酷快乐体.ttf", assetSet.FontBody},
	}
	// Absence is reported before corruption: all three fonts must be
	// present for this backend at all.
	for _, f := range fonts {
		if len(f.data) == 0 {
			return nil, fmt.Errorf("缺少字体文件：%s（%s），矢量渲染无法替代系统字体", f.logical, f.file)
		}
	}

	families := make([]*canvas.FontFamily, len(fonts))
	for i, f := range fonts {
		if err := assets.ValidateFont(f.data); err != nil {
			return nil, fmt.Errorf("字体文件损坏：%s（%s）：%v", f.logical, f.file, err)
		}
		family := canvas.NewFontFamily(f.logical)
		if err := family.LoadFont(f.data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("字体文件损坏：%s（%s）：%v", f.logical, f.file, err)
		}
		families[i] = family
	}
	display, heading, body := families[0], families[1], families[2]

	white := color.NRGBA{255, 255, 255, 255}
	grey := color.NRGBA{204, 204, 204, 255}

	return &faceSet{
		title:  display.Face(fontPt(42), white, canvas.FontRegular, canvas.FontNormal),
		lunar:  body.Face(fontPt(12), grey, canvas.FontRegular, canvas.FontNormal),
		clock:  body.Face(fontPt(28), white, canvas.FontRegular, canvas.FontNormal),
		stamp:  heading.Face(fontPt(14), color.NRGBA{255, 255, 255, 204}, canvas.FontRegular, canvas.FontNormal),
		label:  heading.Face(fontPt(18), white, canvas.FontRegular, canvas.FontNormal),
		info:   heading.Face(fontPt(12), color.NRGBA{255, 255, 255, 179}, canvas.FontRegular, canvas.FontNormal),
		quote:  body.Face(fontPt(14), white, canvas.FontRegular, canvas.FontNormal),
		footer: heading.Face(fontPt(12), grey, canvas.FontRegular, canvas.FontNormal),
		hash:   heading.Face(fontPt(8), color.NRGBA{255, 255, 255, 51}, canvas.FontRegular, canvas.FontNormal),
	}, nil
}

// textNode is a leaf painting a wrapped text block.
func textNode(face *canvas.FontFace, s string, align canvas.TextAlign) *flexNode {
	return &flexNode{
		measure: func(maxW float64) (float64, float64) {
			b := canvas.NewTextBox(face, s, maxW, 0.0, align, canvas.Top, 0.0, 0.0).Bounds()
			return b.W(), b.H()
		},
		paint: func(gc *canvas.Context, r rect) {
			gc.DrawText(r.x, r.y, canvas.NewTextBox(face, s, r.w, 0.0, align, canvas.Top, 0.0, 0.0))
		},
	}
}

// barNode is a progress bar: a translucent track with a solid fill
// proportional to pct.
func barNode(pct float64) *flexNode {
	pct = math.Max(0, math.Min(100, pct))
	return &flexNode{
		grow:   true,
		height: 14,
		paint: func(gc *canvas.Context, r rect) {
			gc.SetFillColor(color.NRGBA{255, 255, 255, 51})
			gc.DrawPath(r.x, r.y, canvas.Rectangle(r.w, r.h))
			if pct > 0 {
				gc.SetFillColor(color.NRGBA{255, 255, 255, 255})
				gc.DrawPath(r.x, r.y, canvas.Rectangle(r.w*pct/100, r.h))
			}
		},
	}
}

func parsePercent(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// statGroup builds one labelled progress row plus its info line.
func statGroup(faces *faceSet, label, pctText, infoText string) *flexNode {
	value := textNode(faces.label, pctText+"%", canvas.Right)
	value.width = 50

	labelNode := textNode(faces.label, label, canvas.Left)
	labelNode.width = 50

	return &flexNode{
		dir:     column,
		gap:     5,
		padding: edges{bottom: 10},
		children: []*flexNode{
			{
				dir:      row,
				gap:      10,
				children: []*flexNode{labelNode, barNode(parsePercent(pctText)), value},
			},
			{
				dir:      column,
				padding:  edges{left: 50},
				children: []*flexNode{textNode(faces.info, infoText, canvas.Left)},
			},
		},
	}
}

// buildTree authors the card: a padded outer card holding the bordered
// glass panel with its stacked content nodes. The hash fingerprint is
// painted into the panel's bottom-right corner.
func buildTree(data card.Data, opts Options, faces *faceSet) *flexNode {
	title := opts.Title
	if title == "" {
		title = "HCRM"
	}

	panel := &flexNode{
		dir:     column,
		gap:     15,
		padding: pad(25, 20),
		paint: func(gc *canvas.Context, r rect) {
			gc.SetFillColor(color.NRGBA{0, 0, 0, 51})
			gc.SetStrokeColor(color.NRGBA{255, 255, 255, 128})
			gc.SetStrokeWidth(3)
			gc.DrawPath(r.x, r.y, canvas.Rectangle(r.w, r.h))
			gc.SetStrokeColor(canvas.Transparent)

			hash := canvas.NewTextBox(faces.hash, data.ContentHash, r.w-20, 0.0, canvas.Right, canvas.Top, 0.0, 0.0)
			gc.DrawText(r.x+10, r.y+r.h-5-hash.Bounds().H(), hash)
		},
		children: []*flexNode{
			textNode(faces.title, title, canvas.Center),
			{
				dir: column,
				gap: 4,
				children: []*flexNode{
					textNode(faces.lunar, data.LunarText, canvas.Center),
					textNode(faces.lunar, data.MoodGreeting, canvas.Center),
				},
			},
			{
				dir:     column,
				gap:     5,
				padding: edges{bottom: 10},
				children: []*flexNode{
					textNode(faces.clock, data.DateText+" "+data.TimeText, canvas.Center),
					textNode(faces.stamp, fmt.Sprintf("Timestamp: %d", data.TimestampMillis), canvas.Center),
				},
			},
			statGroup(faces, "CPU", data.Stats.CPUPercent, data.Stats.CPUModel),
			statGroup(faces, "RAM", data.Stats.RAMPercent, "OS: "+data.Stats.OS),
			{
				dir:     column,
				padding: edges{top: 5, bottom: 5, left: 5, right: 5},
				children: []*flexNode{
					textNode(faces.quote, "“ "+data.Quote+" ”", canvas.Center),
				},
			},
			textNode(faces.footer, opts.Footer, canvas.Center),
		},
	}

	return &flexNode{
		dir:      column,
		padding:  pad(50, 30),
		children: []*flexNode{panel},
	}
}
