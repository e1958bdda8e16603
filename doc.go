// Package inkflow computes an ink bleed reveal: an animated per-pixel alpha
// mask that spreads from an origin point with an organically distorted,
// soft-edged boundary.
//
// # Overview
//
// A reveal is described by an immutable Config (noise scale, distortion,
// edge softness, origin, speed). The caller owns the animation timeline and
// passes a progress value in [0, 1] every frame; inkflow turns progress into
// an alpha for each pixel. Color is never touched, only coverage.
//
// # Quick Start
//
//	d := inkflow.NewDispatcher(inkflow.StaticProbe(true))
//	defer d.Close()
//
//	b := inkflow.NewBinding(d, nil)
//	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
//	// ... draw the content to reveal ...
//	b.Apply(img, 0.4, inkflow.Preset(inkflow.BottomRight))
//
// # Modes
//
// A Dispatcher probes the host once. Hosts that can run the shader get
// ModeFullEffect, where per-pixel alpha comes from an Engine. Everything
// else gets ModeFallbackFade, a uniform alpha equal to progress. A failing
// probe never fails the reveal; it only selects the fade.
//
// # Renditions
//
// The same computation exists three times: Engine.ComputeAlpha on the CPU,
// a WGSL program compiled to SPIR-V (package shader, package gpu) and a Kage
// program for ebiten (package ebitenfx).
//
// # Coordinate System
//
//   - Origin (0,0) at top-left, X right, Y down
//   - Pixel coordinates are in surface pixels; masks sample pixel centers
//   - Config centers are normalized to [0, 1] on both axes
package inkflow

// Version information.
const (
	// VersionName is the library version.
	VersionName = "1.0.0"

	// VersionCode increases with every release.
	VersionCode = 1
)
