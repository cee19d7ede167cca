package layout

import (
	"math"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

const (
	DefaultMargin        = 36.0
	defaultAlphaMin      = 0.001
	defaultVelocityDecay = 0.6 // velocity retained per tick
	dragAlphaTarget      = 0.3
	initialRadius        = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Config holds the viewport and force parameters of one simulation.
type Config struct {
	Width  float64
	Height float64
	Margin float64

	LinkDistance    float64
	LinkStrength    float64
	ChargeStrength  float64
	CollideStrength float64
	AxisStrength    float64
}

// ConfigFor returns the force parameters used for mode on a width×height canvas. Country
// mode uses shorter links and stronger repulsion than global mode.
func ConfigFor(mode domain.GraphMode, width, height float64) Config {
	cfg := Config{
		Width:           width,
		Height:          height,
		Margin:          DefaultMargin,
		LinkDistance:    110,
		LinkStrength:    0.2,
		ChargeStrength:  -160,
		CollideStrength: 0.8,
		AxisStrength:    0.05,
	}
	if mode == domain.ModeCountry {
		cfg.LinkDistance = 90
		cfg.ChargeStrength = -190
	}
	return cfg
}

// CollisionRadius is the exclusion radius of a node group.
func CollisionRadius(group domain.NodeGroup) float64 {
	if group == domain.GroupCountry {
		return 28
	}
	return 22
}
