package trace

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment holds one direction for a number of frames.
type Segment struct {
	Direction r2.Vec
	Frames    int
}

// Script is the input a headless run replays.
type Script []Segment

// Frames returns the total number of frames in the script.
func (s Script) Frames() int {
	n := 0
	for _, seg := range s {
		n += seg.Frames
	}
	return n
}

var directions = map[string]r2.Vec{
	"idle":  {},
	"right": {X: 1},
	"left":  {X: -1},
	"up":    {Y: 1},
	"down":  {Y: -1},
}

// DefaultScript sweeps the player around the spawn point, into whatever
// is nearby and back.
func DefaultScript() Script {
	s, _ := ParseScript("right:90,up:60,left+down:120,left:90,down:60,idle:30")
	return s
}

// ParseScript reads a comma separated list of direction:frames pairs.
// Directions are idle, left, right, up and down, combined with '+'.
func ParseScript(text string) (Script, error) {
	var script Script
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("trace: segment %q: expected direction:frames", part)
		}
		frames, err := strconv.Atoi(count)
		if err != nil || frames <= 0 {
			return nil, fmt.Errorf("trace: segment %q: frames must be a positive integer", part)
		}

		var dir r2.Vec
		for _, d := range strings.Split(name, "+") {
			v, ok := directions[strings.ToLower(strings.TrimSpace(d))]
			if !ok {
				return nil, fmt.Errorf("trace: segment %q: unknown direction %q", part, d)
			}
			dir = r2.Add(dir, v)
		}
		if dir != (r2.Vec{}) {
			dir = r2.Unit(dir)
		}
		script = append(script, Segment{Direction: dir, Frames: frames})
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("trace: empty script")
	}
	return script, nil
}
