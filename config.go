package inkflow

import (
	"errors"
	"fmt"
	"math"
)

// Default configuration values.
const (
	DefaultNoiseScale         = 3.0
	DefaultDistortionStrength = 0.15
	DefaultEdgeSoftness       = 0.15
	DefaultCenterX            = 0.5
	DefaultCenterY            = 0.5
	DefaultSpeedMultiplier    = 1.0

	// TabletNoiseScale gives larger surfaces finer noise detail.
	TabletNoiseScale = 5.0
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("inkflow: invalid config")

// ValidationError reports a Config field outside its documented bounds.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("inkflow: invalid config: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Config is the immutable parameter bundle of an ink reveal.
//
// A Config can only be produced by NewConfig, With, the presets or the zero
// value, so every Config a caller holds is valid. The zero value is
// equivalent to DefaultConfig.
//
// Config is comparable; two configs are the same effect exactly when they
// compare equal with ==.
type Config struct {
	set                bool
	noiseScale         float64
	distortionStrength float64
	edgeSoftness       float64
	centerX            float64
	centerY            float64
	speedMultiplier    float64
}

// ConfigOption configures a Config during construction.
type ConfigOption func(*configValues)

// configValues holds the raw, not yet validated field values.
type configValues struct {
	noiseScale         float64
	distortionStrength float64
	edgeSoftness       float64
	centerX            float64
	centerY            float64
	speedMultiplier    float64
}

func defaultValues() configValues {
	return configValues{
		noiseScale:         DefaultNoiseScale,
		distortionStrength: DefaultDistortionStrength,
		edgeSoftness:       DefaultEdgeSoftness,
		centerX:            DefaultCenterX,
		centerY:            DefaultCenterY,
		speedMultiplier:    DefaultSpeedMultiplier,
	}
}

// WithNoiseScale sets the noise frequency. Higher values give finer detail.
// Must be > 0.
func WithNoiseScale(v float64) ConfigOption {
	return func(c *configValues) { c.noiseScale = v }
}

// WithDistortionStrength sets the fraction of the spread radius the noise may
// push the boundary by. Must be in [0, 1].
func WithDistortionStrength(v float64) ConfigOption {
	return func(c *configValues) { c.distortionStrength = v }
}

// WithEdgeSoftness sets the width of the smoothed transition band in
// normalized distance units. Must be in [0, 1].
func WithEdgeSoftness(v float64) ConfigOption {
	return func(c *configValues) { c.edgeSoftness = v }
}

// WithCenter sets the normalized origin of the spread. Both axes must be in
// [0, 1].
func WithCenter(x, y float64) ConfigOption {
	return func(c *configValues) {
		c.centerX = x
		c.centerY = y
	}
}

// WithPosition sets the origin to one of the nine preset positions.
func WithPosition(p Position) ConfigOption {
	return func(c *configValues) {
		c.centerX, c.centerY = p.Center()
	}
}

// WithSpeedMultiplier sets the timeline speed factor. The mask engine does
// not read it; animation drivers do. Must be > 0.
func WithSpeedMultiplier(v float64) ConfigOption {
	return func(c *configValues) { c.speedMultiplier = v }
}

// NewConfig builds a validated Config from defaults plus the given options.
//
// Returns a *ValidationError wrapping ErrInvalidConfig for the first field
// outside its bounds.
func NewConfig(opts ...ConfigOption) (Config, error) {
	return build(defaultValues(), opts)
}

// MustConfig is like NewConfig but panics on invalid input.
// Intended for package-level presets and tests.
func MustConfig(opts ...ConfigOption) Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return MustConfig()
}

// OptimizedConfig returns the default configuration tuned for the device
// class: tablets get TabletNoiseScale, phones the default noise scale.
func OptimizedConfig(isTablet bool) Config {
	if isTablet {
		return MustConfig(WithNoiseScale(TabletNoiseScale))
	}
	return DefaultConfig()
}

// With returns a copy of c with the given options applied and validated.
func (c Config) With(opts ...ConfigOption) (Config, error) {
	return build(c.values(), opts)
}

func build(v configValues, opts []ConfigOption) (Config, error) {
	for _, opt := range opts {
		opt(&v)
	}
	if err := v.validate(); err != nil {
		return Config{}, err
	}
	// x + 0 turns -0 into +0 so equal configs hash equally.
	return Config{
		set:                true,
		noiseScale:         v.noiseScale + 0,
		distortionStrength: v.distortionStrength + 0,
		edgeSoftness:       v.edgeSoftness + 0,
		centerX:            v.centerX + 0,
		centerY:            v.centerY + 0,
		speedMultiplier:    v.speedMultiplier + 0,
	}, nil
}

func (v *configValues) validate() error {
	if !isFinite(v.noiseScale) || v.noiseScale <= 0 {
		return &ValidationError{Field: "noiseScale", Value: v.noiseScale, Reason: "must be positive"}
	}
	if !inUnit(v.distortionStrength) {
		return &ValidationError{Field: "distortionStrength", Value: v.distortionStrength, Reason: "must be between 0 and 1"}
	}
	if !inUnit(v.edgeSoftness) {
		return &ValidationError{Field: "edgeSoftness", Value: v.edgeSoftness, Reason: "must be between 0 and 1"}
	}
	if !inUnit(v.centerX) {
		return &ValidationError{Field: "centerX", Value: v.centerX, Reason: "must be between 0 and 1"}
	}
	if !inUnit(v.centerY) {
		return &ValidationError{Field: "centerY", Value: v.centerY, Reason: "must be between 0 and 1"}
	}
	if !isFinite(v.speedMultiplier) || v.speedMultiplier <= 0 {
		return &ValidationError{Field: "speedMultiplier", Value: v.speedMultiplier, Reason: "must be positive"}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// inUnit reports whether x is in [0, 1]. NaN is rejected.
func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}

// resolved returns c, or the default configuration for the zero value.
func (c Config) resolved() Config {
	if !c.set {
		return DefaultConfig()
	}
	return c
}

func (c Config) values() configValues {
	c = c.resolved()
	return configValues{
		noiseScale:         c.noiseScale,
		distortionStrength: c.distortionStrength,
		edgeSoftness:       c.edgeSoftness,
		centerX:            c.centerX,
		centerY:            c.centerY,
		speedMultiplier:    c.speedMultiplier,
	}
}

// NoiseScale returns the noise frequency multiplier.
func (c Config) NoiseScale() float64 { return c.resolved().noiseScale }

// DistortionStrength returns the boundary distortion fraction.
func (c Config) DistortionStrength() float64 { return c.resolved().distortionStrength }

// EdgeSoftness returns the transition band width.
func (c Config) EdgeSoftness() float64 { return c.resolved().edgeSoftness }

// CenterX returns the normalized horizontal origin.
func (c Config) CenterX() float64 { return c.resolved().centerX }

// CenterY returns the normalized vertical origin.
func (c Config) CenterY() float64 { return c.resolved().centerY }

// Center returns the normalized origin as a vector.
func (c Config) Center() Vec2 {
	r := c.resolved()
	return Vec2{X: r.centerX, Y: r.centerY}
}

// SpeedMultiplier returns the timeline speed factor.
func (c Config) SpeedMultiplier() float64 { return c.resolved().speedMultiplier }

// String returns a compact human-readable form of the configuration.
func (c Config) String() string {
	r := c.resolved()
	return fmt.Sprintf("Config{noiseScale=%g distortion=%g edge=%g center=(%g,%g) speed=%g}",
		r.noiseScale, r.distortionStrength, r.edgeSoftness, r.centerX, r.centerY, r.speedMultiplier)
}
