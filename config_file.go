package inkflow

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFile is the YAML form of a Config. Absent fields keep their
// defaults; position, when set, overrides centerX and centerY.
//
//	noiseScale: 4.0
//	distortionStrength: 0.2
//	edgeSoftness: 0.1
//	position: BR
//	speedMultiplier: 1.5
//	optimizedFor: tablet
type configFile struct {
	NoiseScale         *float64 `yaml:"noiseScale"`
	DistortionStrength *float64 `yaml:"distortionStrength"`
	EdgeSoftness       *float64 `yaml:"edgeSoftness"`
	CenterX            *float64 `yaml:"centerX"`
	CenterY            *float64 `yaml:"centerY"`
	Position           string   `yaml:"position"`
	SpeedMultiplier    *float64 `yaml:"speedMultiplier"`
	OptimizedFor       string   `yaml:"optimizedFor"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("inkflow: failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("inkflow: config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a YAML configuration document. Validation errors wrap
// ErrInvalidConfig.
func ParseConfig(data []byte) (Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("inkflow: failed to parse config YAML: %w", err)
	}

	var base Config
	switch strings.ToLower(strings.TrimSpace(f.OptimizedFor)) {
	case "":
		base = DefaultConfig()
	case "tablet":
		base = OptimizedConfig(true)
	case "phone":
		base = OptimizedConfig(false)
	default:
		return Config{}, fmt.Errorf("inkflow: optimizedFor must be tablet or phone, got %q", f.OptimizedFor)
	}

	var opts []ConfigOption
	if f.NoiseScale != nil {
		opts = append(opts, WithNoiseScale(*f.NoiseScale))
	}
	if f.DistortionStrength != nil {
		opts = append(opts, WithDistortionStrength(*f.DistortionStrength))
	}
	if f.EdgeSoftness != nil {
		opts = append(opts, WithEdgeSoftness(*f.EdgeSoftness))
	}
	cx, cy := base.CenterX(), base.CenterY()
	if f.CenterX != nil {
		cx = *f.CenterX
	}
	if f.CenterY != nil {
		cy = *f.CenterY
	}
	opts = append(opts, WithCenter(cx, cy))
	if f.Position != "" {
		p, err := ParsePosition(f.Position)
		if err != nil {
			return Config{}, err
		}
		opts = append(opts, WithPosition(p))
	}
	if f.SpeedMultiplier != nil {
		opts = append(opts, WithSpeedMultiplier(*f.SpeedMultiplier))
	}
	return base.With(opts...)
}
