package config

import "fmt"

// SpeedPreset represents a named movement tuning.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedFixed  SpeedPreset = "fixed" // normal speed, fixed time step
)

// Presets lists the presets in menu order.
var Presets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedFixed}

// ParseSpeedPreset validates a preset name. The empty string means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	if s == "" {
		return SpeedNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown speed preset %q", s)
}

// SpeedForPreset returns the player acceleration for a preset.
func SpeedForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 25
	case SpeedFast:
		return 80
	default:
		return 50
	}
}

// ApplySpeedPreset modifies the config based on a speed preset.
func ApplySpeedPreset(cfg *ArenaConfig, preset SpeedPreset) {
	cfg.Physics.Speed = SpeedForPreset(preset)
	cfg.Physics.FixedStep = preset == SpeedFixed
}
