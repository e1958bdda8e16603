package inkflow

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/inkflow/cache"
	"github.com/gogpu/inkflow/internal/parallel"
	"github.com/gogpu/inkflow/shader"
)

// Mode selects how reveals are rendered on a host.
type Mode int32

const (
	// ModeFallbackFade renders a uniform alpha equal to the clamped progress.
	// It is the zero value so an unprobed host degrades safely.
	ModeFallbackFade Mode = iota

	// ModeFullEffect renders the per-pixel ink mask.
	ModeFullEffect
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFallbackFade:
		return "FallbackFade"
	case ModeFullEffect:
		return "FullEffect"
	default:
		return "Unknown"
	}
}

// Strategy produces reveal alphas. The two implementations are *Engine
// (ModeFullEffect) and the linear fade (ModeFallbackFade).
type Strategy interface {
	// Mode returns the variant.
	Mode() Mode

	// AlphaAt returns the alpha in [0, 1] for a pixel of a surface.
	AlphaAt(pixel, size Vec2, progress float64) float64
}

// fade is the fallback strategy: a plain linear cross-fade.
type fade struct{}

var _ Strategy = fade{}

func (fade) Mode() Mode { return ModeFallbackFade }

func (fade) AlphaAt(_, _ Vec2, progress float64) float64 {
	return clamp01(progress)
}

// Fade returns the fallback strategy.
func Fade() Strategy { return fade{} }

// minBandRows is the smallest row band handed to one worker.
const minBandRows = 8

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	cacheCapacity int
	workers       int
	compile       bool
}

func defaultDispatcherOptions() dispatcherOptions {
	return dispatcherOptions{
		cacheCapacity: cache.DefaultCapacity,
		workers:       0,
		compile:       true,
	}
}

// WithCacheCapacity sets the per-shard engine cache capacity.
func WithCacheCapacity(n int) DispatcherOption {
	return func(o *dispatcherOptions) { o.cacheCapacity = n }
}

// WithWorkers sets the number of mask rendering workers.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) DispatcherOption {
	return func(o *dispatcherOptions) { o.workers = n }
}

// WithShaderCompilation controls whether full-effect dispatchers compile the
// GPU program. CPU-only hosts can turn it off; engines then have a nil
// Program and are evaluated per pixel.
func WithShaderCompilation(enabled bool) DispatcherOption {
	return func(o *dispatcherOptions) { o.compile = enabled }
}

// Dispatcher selects between the full ink effect and the fallback fade for a
// host, and owns the engine cache and the mask rendering workers.
//
// The mode is decided once from the capability probe; Reprobe may change it
// later. Dispatcher is safe for concurrent use.
type Dispatcher struct {
	probe   CapabilityProbe
	mode    atomic.Int32
	opts    dispatcherOptions
	engines *cache.ShardedCache[Config, *Engine]
	pool    *parallel.WorkerPool

	compileOnce sync.Once
	program     *shader.Program
}

// NewDispatcher probes the host and returns a dispatcher for it.
func NewDispatcher(probe CapabilityProbe, opts ...DispatcherOption) *Dispatcher {
	o := defaultDispatcherOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dispatcher{
		probe:   probe,
		opts:    o,
		engines: cache.NewSharded[Config, *Engine](o.cacheCapacity, hashConfig),
		pool:    parallel.NewWorkerPool(o.workers),
	}
	d.Reprobe()
	return d
}

// Mode returns the active mode.
func (d *Dispatcher) Mode() Mode {
	return Mode(d.mode.Load())
}

// Reprobe queries the capability probe again and returns the resulting mode.
func (d *Dispatcher) Reprobe() Mode {
	mode := ModeFallbackFade
	if queryProbe(d.probe) {
		mode = ModeFullEffect
		d.compileProgram()
	}
	if prev := Mode(d.mode.Swap(int32(mode))); prev != mode {
		// Cached engines carry the program of the previous mode.
		d.engines.Clear()
	}
	Logger().Info("inkflow: effect mode selected", "mode", mode.String())
	return mode
}

// compileProgram compiles the GPU program once. A failed compile is logged
// and leaves engines CPU-evaluated; it never changes the mode.
func (d *Dispatcher) compileProgram() {
	if !d.opts.compile {
		return
	}
	d.compileOnce.Do(func() {
		prog, err := shader.Compile()
		if err != nil {
			Logger().Warn("inkflow: shader compile failed, evaluating masks on CPU", "err", err)
			return
		}
		d.program = prog
		Logger().Debug("inkflow: shader compiled", "words", prog.WordCount())
	})
}

// Program returns the compiled GPU program, or nil if none is available.
func (d *Dispatcher) Program() *shader.Program {
	if d.Mode() != ModeFullEffect {
		return nil
	}
	return d.program
}

// GetOrCreate returns the engine for cfg, constructing it on first use.
//
// Structurally equal configs share one engine; concurrent first calls
// construct it once. Engines may be evicted and rebuilt at any time.
// A cached engine whose program no longer matches the current mode is
// replaced.
func (d *Dispatcher) GetOrCreate(cfg Config) *Engine {
	cfg = cfg.resolved()
	create := func() *Engine {
		Logger().Debug("inkflow: engine created", "config", cfg.String())
		e := NewEngine(cfg)
		e.program = d.Program()
		return e
	}
	e := d.engines.GetOrCreate(cfg, create)
	if e.program != d.Program() {
		d.engines.Delete(cfg)
		e = d.engines.GetOrCreate(cfg, create)
	}
	return e
}

// Strategy returns the rendering strategy for cfg under the current mode.
func (d *Dispatcher) Strategy(cfg Config) Strategy {
	if d.Mode() == ModeFallbackFade {
		return fade{}
	}
	return d.GetOrCreate(cfg)
}

// AlphaAt evaluates the current strategy for one pixel.
func (d *Dispatcher) AlphaAt(pixel, size Vec2, progress float64, cfg Config) float64 {
	return d.Strategy(cfg).AlphaAt(pixel, size, progress)
}

// Render fills m with the reveal mask for cfg at progress. The mask size is
// the surface size; pixels are sampled at their centers.
func (d *Dispatcher) Render(m *Mask, progress float64, cfg Config) {
	renderMask(d.pool, d.Strategy(cfg), m, progress)
}

// CacheStats returns engine cache statistics.
func (d *Dispatcher) CacheStats() cache.Stats {
	return d.engines.Stats()
}

// Close stops the rendering workers and drops cached engines.
func (d *Dispatcher) Close() {
	d.pool.Close()
	d.engines.Clear()
}

func renderMask(pool *parallel.WorkerPool, s Strategy, m *Mask, progress float64) {
	size := m.Size()
	if s.Mode() == ModeFallbackFade {
		m.Fill(toMask8(s.AlphaAt(Vec2{}, size, progress)))
		return
	}

	w := m.width
	pool.ForEachBand(m.height, minBandRows, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			row := m.data[y*w : (y+1)*w]
			py := float64(y) + 0.5
			for x := range row {
				row[x] = toMask8(s.AlphaAt(Vec2{X: float64(x) + 0.5, Y: py}, size, progress))
			}
		}
	})
}

// hashConfig selects the cache shard for a config. Config construction
// normalizes -0, so equal configs hash equally.
func hashConfig(c Config) uint64 {
	return cache.Float64sHasher(
		c.noiseScale, c.distortionStrength, c.edgeSoftness,
		c.centerX, c.centerY, c.speedMultiplier,
	)
}
