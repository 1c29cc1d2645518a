// Package world holds the bodies of one arena in an ECS world and steps the
// player through them with the physics resolver.
//
// Entities are spawned in level order and that order is kept for the
// lifetime of the world: it is the index space the resolver works in and
// therefore the tie-break order between simultaneous contacts.
package world

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/physics"
)

// Transform is the kinematic state of an entity.
type Transform struct {
	Position r2.Vec
	Velocity r2.Vec
}

// Collider is the collision shape of an entity.
type Collider struct {
	Shape    physics.Shape
	Collides bool
}

// Tag identifies what an entity is.
type Tag struct {
	Kind string
	Name string
}

// Entity is a read-only view of one entity for rendering and export.
type Entity struct {
	Body physics.Body
	Kind string
	Name string
}

// Stats accumulates over the lifetime of a world.
type Stats struct {
	Ticks      int
	Elapsed    float64 // simulated seconds
	Distance   float64 // meters travelled by the player
	Contacts   int     // accepted impacts
	Rejections int     // frames halted by the overlap check
}

// World is one arena's simulation state.
type World struct {
	spawner    *ecs.Map3[Transform, Collider, Tag]
	transforms *ecs.Map1[Transform]
	colliders  *ecs.Map1[Collider]
	tags       *ecs.Map1[Tag]

	order  []ecs.Entity
	player int
	bodies []physics.Body

	resolver physics.Resolver
	speed    float64
	stats    Stats
	last     physics.Result
	logger   *log.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for rejected sub-steps.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// New spawns the level's bodies into a fresh world.
func New(level config.Level, phys config.PhysicsConfig, opts ...Option) (*World, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	ew := ecs.NewWorld()
	w := &World{
		spawner:    ecs.NewMap3[Transform, Collider, Tag](ew),
		transforms: ecs.NewMap1[Transform](ew),
		colliders:  ecs.NewMap1[Collider](ew),
		tags:       ecs.NewMap1[Tag](ew),
		player:     level.Player(),
		resolver: physics.Resolver{
			Damping:            phys.Damping,
			MaxSlideIterations: phys.MaxSlideIterations,
		},
		speed: phys.Speed,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, spec := range level.Bodies {
		w.spawn(spec)
	}
	w.bodies = make([]physics.Body, len(w.order))
	return w, nil
}

func (w *World) spawn(spec config.BodySpec) {
	t := Transform{Position: vec(spec.Position)}
	c := Collider{Shape: ShapeOf(spec), Collides: spec.Collides()}
	tag := Tag{Kind: spec.Kind, Name: spec.Name}
	w.order = append(w.order, w.spawner.NewEntity(&t, &c, &tag))
}

// ShapeOf maps a body spec to its collision shape: a box when it has an
// extent, a circle when it only has a radius, a point otherwise.
func ShapeOf(spec config.BodySpec) physics.Shape {
	switch {
	case spec.Box.X > 0 || spec.Box.Y > 0:
		return physics.Box(vec(spec.Box), spec.Radius)
	case spec.Radius > 0:
		return physics.Circle(spec.Radius)
	default:
		return physics.Point()
	}
}

func vec(v config.Vec) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// snapshot copies the ECS state into the resolver's body slice.
func (w *World) snapshot() []physics.Body {
	for i, e := range w.order {
		t := w.transforms.Get(e)
		c := w.colliders.Get(e)
		w.bodies[i] = physics.Body{
			Position: t.Position,
			Velocity: t.Velocity,
			Shape:    c.Shape,
			Collides: c.Collides,
		}
	}
	return w.bodies
}

// Step advances the player by one frame of dt seconds toward direction.
func (w *World) Step(dt float64, direction r2.Vec) physics.Result {
	bodies := w.snapshot()
	res := w.resolver.Move(bodies, w.player, dt, w.speed, direction)

	t := w.transforms.Get(w.order[w.player])
	t.Position = bodies[w.player].Position
	t.Velocity = bodies[w.player].Velocity

	w.stats.Ticks++
	w.stats.Elapsed += dt
	w.stats.Distance += r2.Norm(res.Moved)
	w.stats.Contacts += res.Hits
	if res.Rejected {
		w.stats.Rejections++
		if w.logger != nil {
			w.logger.Debug("sub-step rejected",
				"tick", w.stats.Ticks,
				"iteration", res.Iterations,
				"blocker", w.Entity(res.Blocker).Name,
			)
		}
	}
	w.last = res
	return res
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.order)
}

// Entity returns a view of the i-th entity in spawn order.
func (w *World) Entity(i int) Entity {
	if i < 0 || i >= len(w.order) {
		return Entity{}
	}
	e := w.order[i]
	t := w.transforms.Get(e)
	c := w.colliders.Get(e)
	tag := w.tags.Get(e)
	return Entity{
		Body: physics.Body{
			Position: t.Position,
			Velocity: t.Velocity,
			Shape:    c.Shape,
			Collides: c.Collides,
		},
		Kind: tag.Kind,
		Name: tag.Name,
	}
}

// Entities returns views of all entities in spawn order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.order))
	for i := range w.order {
		out[i] = w.Entity(i)
	}
	return out
}

// Player returns a view of the player entity.
func (w *World) Player() Entity {
	return w.Entity(w.player)
}

// PlayerIndex returns the player's index in spawn order.
func (w *World) PlayerIndex() int {
	return w.player
}

// Stats returns the accumulated statistics.
func (w *World) Stats() Stats {
	return w.stats
}

// Last returns the result of the most recent Step.
func (w *World) Last() physics.Result {
	return w.last
}
