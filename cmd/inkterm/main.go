// Command inkterm previews the ink reveal in a terminal.
//
// Keys: 1-9 pick the origin preset, space replays, f toggles the fallback
// fade, + and - change speed, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/inkflow"
	"github.com/gogpu/inkflow/internal/timeline"
)

// Speed range and step of the +/- keys.
const (
	minSpeed  = 0.1
	maxSpeed  = 3.0
	speedStep = 0.1
)

// wideColumns is the terminal width treated as a tablet-class surface.
const wideColumns = 120

type preview struct {
	screen tcell.Screen

	full     *inkflow.Dispatcher
	fade     *inkflow.Dispatcher
	fallback bool

	position inkflow.Position
	speed    float64
	cfg      inkflow.Config

	mask  *inkflow.Mask
	start time.Time
}

func newPreview(screen tcell.Screen, cfg inkflow.Config) *preview {
	if cfg == inkflow.DefaultConfig() {
		w, _ := screen.Size()
		cfg = inkflow.OptimizedConfig(w >= wideColumns)
	}
	p := &preview{
		screen:   screen,
		full:     inkflow.NewDispatcher(inkflow.StaticProbe(true), inkflow.WithShaderCompilation(false)),
		fade:     inkflow.NewDispatcher(inkflow.StaticProbe(false)),
		position: positionOf(cfg),
		speed:    cfg.SpeedMultiplier(),
		cfg:      cfg,
		start:    time.Now(),
	}
	p.resize()
	return p
}

// positionOf returns the preset whose origin matches cfg, or Center.
func positionOf(cfg inkflow.Config) inkflow.Position {
	for _, pos := range inkflow.Presets() {
		if x, y := pos.Center(); x == cfg.CenterX() && y == cfg.CenterY() {
			return pos
		}
	}
	return inkflow.Center
}

func (p *preview) close() {
	p.full.Close()
	p.fade.Close()
}

func (p *preview) dispatcher() *inkflow.Dispatcher {
	if p.fallback {
		return p.fade
	}
	return p.full
}

// resize allocates a mask with two samples per cell row; each cell draws
// an upper half block.
func (p *preview) resize() {
	w, h := p.screen.Size()
	p.mask = inkflow.NewMask(w, max(h-1, 0)*2)
}

func (p *preview) replay() { p.start = time.Now() }

func (p *preview) setPosition(pos inkflow.Position) {
	p.position = pos
	if cfg, err := p.cfg.With(inkflow.WithPosition(pos)); err == nil {
		p.cfg = cfg
	}
	p.replay()
}

func (p *preview) changeSpeed(delta float64) {
	speed := min(max(p.speed+delta, minSpeed), maxSpeed)
	if cfg, err := p.cfg.With(inkflow.WithSpeedMultiplier(speed)); err == nil {
		p.speed = speed
		p.cfg = cfg
	}
}

// handleInput returns false when the preview should exit.
func (p *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r >= '1' && r <= '9':
			p.setPosition(inkflow.Presets()[r-'1'])
		case r == ' ':
			p.replay()
		case r == 'f':
			p.fallback = !p.fallback
			p.replay()
		case r == '+' || r == '=':
			p.changeSpeed(speedStep)
		case r == '-':
			p.changeSpeed(-speedStep)
		}
	case *tcell.EventResize:
		p.screen.Sync()
		p.resize()
	}
	return true
}

func (p *preview) draw() {
	tl := timeline.New(p.cfg.SpeedMultiplier())
	progress, phase := tl.At(time.Since(p.start))

	d := p.dispatcher()
	d.Render(p.mask, progress, p.cfg)

	w, h := p.mask.Width(), p.mask.Height()
	for y := 0; y < h; y += 2 {
		for x := range w {
			top := cellColor(x, y, w, h, p.mask.At(x, y))
			bottom := cellColor(x, y+1, w, h, p.mask.At(x, y+1))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	status := fmt.Sprintf(" %s  origin=%s  speed=%.1fx  progress=%.2f  %s  [1-9 origin, space replay, f fade, +/- speed, q quit]",
		d.Mode(), p.position.Label(), p.speed, progress, phase)
	sw, sh := p.screen.Size()
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := range sw {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		p.screen.SetContent(x, sh-1, r, nil, statusStyle)
	}

	p.screen.Show()
}

// cellColor blends the content gradient over the dark background by the
// mask value.
func cellColor(x, y, w, h int, alpha uint8) tcell.Color {
	fx := float64(x) / float64(max(w-1, 1))
	fy := float64(y) / float64(max(h-1, 1))
	a := float64(alpha) / 255

	blend := func(bg, fg float64) int32 {
		return int32(bg + (fg-bg)*a)
	}
	return tcell.NewRGBColor(
		blend(0x1a, 40+200*fx),
		blend(0x1a, 90+100*fy),
		blend(0x2e, 220-140*fx),
	)
}

func (p *preview) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- p.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !p.handleInput(ev) {
				return
			}
		case <-ticker.C:
			p.draw()
		}
	}
}

func main() {
	var (
		config  = flag.String("config", "", "YAML reveal configuration")
		logFile = flag.String("log", "", "write engine logs to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer func() {
			_ = f.Close()
		}()
		inkflow.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := inkflow.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = inkflow.LoadConfig(*config); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	p := newPreview(screen, cfg)
	p.run()
	p.close()
	screen.Fini()
}
