// Command inkdemo renders an ink reveal as a sequence of PNG frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // decode -input JPEGs
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/inkflow"
	"github.com/gogpu/inkflow/internal/timeline"
)

// background is the color the revealed content is composited over.
var background = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}

func main() {
	var (
		width    = flag.Int("width", 800, "frame width")
		height   = flag.Int("height", 600, "frame height")
		frames   = flag.Int("frames", 24, "number of frames over the reveal")
		input    = flag.String("input", "", "picture to reveal (PNG or JPEG); a generated card when empty")
		config   = flag.String("config", "", "YAML reveal configuration")
		position = flag.String("position", "", "origin preset label (TL, TC, TR, LC, C, RC, BL, BC, BR)")
		fallback = flag.Bool("fallback", false, "force the fallback fade")
		caption  = flag.String("caption", "Ink Flow", "caption drawn on the generated card")
		out      = flag.String("out", "frames", "output directory")
		workers  = flag.Int("workers", 0, "mask rendering workers (0 = GOMAXPROCS)")
		verbose  = flag.Bool("v", false, "log engine activity")
	)
	flag.Parse()

	if *verbose {
		inkflow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(*config, *position)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	content, err := loadContent(*input, *width, *height, *caption)
	if err != nil {
		log.Fatalf("Failed to prepare content: %v", err)
	}

	d := inkflow.NewDispatcher(inkflow.StaticProbe(!*fallback),
		inkflow.WithWorkers(*workers),
		inkflow.WithShaderCompilation(false))
	defer d.Close()
	b := inkflow.NewBinding(d, nil)

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	tl := timeline.New(cfg.SpeedMultiplier())
	frame := image.NewRGBA(content.Bounds())
	for i, progress := range tl.Frames(*frames) {
		copy(frame.Pix, content.Pix)
		b.Apply(frame, progress, cfg)

		path := filepath.Join(*out, fmt.Sprintf("frame_%03d.png", i))
		if err := savePNG(path, composite(frame)); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}

	log.Printf("Rendered %d frames (%dx%d, %s, %s) to %s\n",
		*frames, *width, *height, d.Mode(), cfg, *out)
}

func loadConfig(path, position string) (inkflow.Config, error) {
	cfg := inkflow.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = inkflow.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if position != "" {
		p, err := inkflow.ParsePosition(position)
		if err != nil {
			return cfg, err
		}
		return cfg.With(inkflow.WithPosition(p))
	}
	return cfg, nil
}

// loadContent returns the picture to reveal, scaled to the frame size.
func loadContent(path string, w, h int, caption string) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if path == "" {
		return dst, drawCard(dst, caption)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// drawCard paints a gradient card with a centered caption.
func drawCard(dst *image.RGBA, caption string) error {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(max(b.Dy()-1, 1))
		c := color.RGBA{
			R: uint8(40 + 180*t),
			G: uint8(90 + 60*t),
			B: uint8(200 - 120*t),
			A: 255,
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
	if caption == "" {
		return nil
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(b.Dy()) / 8,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = face.Close()
	}()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}
	advance := drawer.MeasureString(caption)
	metrics := face.Metrics()
	x := (fixed.I(b.Dx()) - advance) / 2
	y := (fixed.I(b.Dy()) + metrics.Ascent - metrics.Descent) / 2
	drawer.Dot = fixed.Point26_6{X: x, Y: y}
	drawer.DrawString(caption)
	return nil
}

// composite flattens the revealed frame onto the background.
func composite(frame *image.RGBA) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	xdraw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)
	xdraw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
	return out
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
