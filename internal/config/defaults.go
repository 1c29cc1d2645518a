package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Physics: PhysicsConfig{
			Speed:              50,
			Damping:            8,
			MaxSlideIterations: 4,
			MaxDT:              0.1,
		},
		Render: RenderConfig{
			CellsPerMeterX: 4,
			CellsPerMeterY: 2,
		},
		Levels: []Level{
			defaultArenaLevel(),
			defaultPillarsLevel(),
			defaultCorridorLevel(),
		},
	}
}

// room returns four walls enclosing a w by h area centered on the origin.
func room(w, h, thickness float64) []BodySpec {
	return []BodySpec{
		{Kind: KindWall, Name: "north", Position: Vec{0, h / 2}, Box: Vec{w + thickness, thickness}},
		{Kind: KindWall, Name: "south", Position: Vec{0, -h / 2}, Box: Vec{w + thickness, thickness}},
		{Kind: KindWall, Name: "west", Position: Vec{-w / 2, 0}, Box: Vec{thickness, h + thickness}},
		{Kind: KindWall, Name: "east", Position: Vec{w / 2, 0}, Box: Vec{thickness, h + thickness}},
	}
}

func defaultArenaLevel() Level {
	bodies := []BodySpec{
		{Kind: KindPlayer, Name: "player", Position: Vec{0, 0}, Radius: 0.5},
		{Kind: KindWall, Name: "block", Position: Vec{-2, 0}, Box: Vec{1, 1}},
	}
	return Level{
		ID:     "arena",
		Title:  "Arena",
		Bodies: append(bodies, room(16, 12, 0.5)...),
	}
}

func defaultPillarsLevel() Level {
	bodies := []BodySpec{
		{Kind: KindPlayer, Name: "player", Position: Vec{0, 0}, Radius: 0.5},
		{Kind: KindPillar, Name: "nw", Position: Vec{-3, 2.5}, Radius: 0.75},
		{Kind: KindPillar, Name: "ne", Position: Vec{3, 2.5}, Radius: 0.75},
		{Kind: KindPillar, Name: "sw", Position: Vec{-3, -2.5}, Box: Vec{1, 1}, Radius: 0.3},
		{Kind: KindPillar, Name: "se", Position: Vec{3, -2.5}, Box: Vec{1, 1}, Radius: 0.3},
		{Kind: KindCrate, Name: "crate", Position: Vec{0, -4}, Box: Vec{1.5, 0.5}},
	}
	return Level{
		ID:     "pillars",
		Title:  "Pillars",
		Bodies: append(bodies, room(16, 12, 0.5)...),
	}
}

func defaultCorridorLevel() Level {
	return Level{
		ID:    "corridor",
		Title: "Corridor",
		Bodies: []BodySpec{
			{Kind: KindPlayer, Name: "player", Position: Vec{-6, 0}, Box: Vec{0.8, 0.8}, Radius: 0.1},
			{Kind: KindWall, Name: "ceiling", Position: Vec{0, 1.5}, Box: Vec{14, 0.4}},
			{Kind: KindWall, Name: "floor", Position: Vec{0, -1.5}, Box: Vec{14, 0.4}},
			{Kind: KindWall, Name: "back", Position: Vec{-7.2, 0}, Box: Vec{0.4, 3.4}},
			{Kind: KindWall, Name: "end", Position: Vec{7.2, 0}, Box: Vec{0.4, 3.4}},
			{Kind: KindPillar, Name: "post", Position: Vec{2, 0.6}, Radius: 0.3},
			{Kind: KindCrate, Name: "ghost", Position: Vec{-3, 0}, Radius: 0.3, Ghost: true},
		},
	}
}
