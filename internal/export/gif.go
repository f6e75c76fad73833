package export

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"io"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/viz"
)

const (
	// each braille dot becomes a dotPx x dotPx block
	dotPx = 4
	// frame delay in 100ths of a second
	frameDelay = 4
)

// RotationGIF renders frames of the 3D surface, advancing the rotation by
// one degree per frame from p.RotationDeg. cols x rows is the braille canvas
// size; the image is cols*2*dotPx wide. Frames render concurrently.
func RotationGIF(ctx context.Context, mode metric.Mode, p metric.Params, frames, cols, rows int, theme viz.Theme) (*gif.GIF, error) {
	if frames <= 0 {
		frames = 1
	}
	palette := color.Palette{hexColor(string(theme.Background)), hexColor(string(theme.Primary))}

	images := make([]*image.Paletted, frames)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for k := 0; k < frames; k++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fp := config.Clamp(p.WithRotation(p.RotationDeg + float64(k)))
			canvas := viz.NewCanvas(cols, rows)
			viz.RenderCloud(canvas, metric.Sample3D(mode, fp, metric.Domain3D), viz.NewCamera(), true)
			images[k] = rasterize(canvas, palette)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, img := range images {
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	return anim, nil
}

// WriteGIF encodes an animation produced by RotationGIF.
func WriteGIF(w io.Writer, anim *gif.GIF) error {
	return gif.EncodeAll(w, anim)
}

func rasterize(c *viz.Canvas, palette color.Palette) *image.Paletted {
	w, h := c.DotSize()
	img := image.NewPaletted(image.Rect(0, 0, w*dotPx, h*dotPx), palette)
	c.Dots(func(x, y int) {
		for py := 0; py < dotPx; py++ {
			for px := 0; px < dotPx; px++ {
				img.SetColorIndex(x*dotPx+px, y*dotPx+py, 1)
			}
		}
	})
	return img
}

// hexColor parses "#rrggbb"; anything else is white.
func hexColor(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}
