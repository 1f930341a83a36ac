package physics

import "log/slog"

// Stats reports per-step diagnostics: candidate pair and constraint counts,
// tree cost, and the tick stamp.
type Stats struct {
	Stamp              uint64
	CandidatePairs     int
	ContactConstraints int
	JointConstraints   int
	TreeCost           float64
}

// World owns every body and joint in the simulation and drives the fixed
// per-tick data flow. Sleeping and island partitioning are intentionally
// not implemented (see DESIGN.md).
type World struct {
	Config *Config

	bodies map[BodyID]*RigidBody
	nextID BodyID
	tree   *Tree

	joints []Constraint

	warmStart map[contactKey]*warmStartEntry

	stamp  uint64
	locked bool
}

// NewWorld validates cfg and constructs an empty World.
func NewWorld(cfg *Config) (*World, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &World{
		Config:    cfg,
		bodies:    map[BodyID]*RigidBody{},
		tree:      NewTree(cfg.AABBMargin),
		warmStart: map[contactKey]*warmStartEntry{},
	}, nil
}

// Add assigns the body a stable id, inserts its leaf into the tree, and
// takes ownership of it.
func (w *World) Add(b *RigidBody) error {
	if w.locked {
		return newError(KindInvalidConfiguration, "cannot Add while World.Step is in progress")
	}
	w.nextID++
	b.ID = w.nextID
	box := b.WorldAABB()
	b.node = w.tree.Insert(b.ID, box, b.IsStatic())
	w.bodies[b.ID] = b
	return nil
}

// Remove clears the body's tree leaf and drops it from the World. Any
// constraint still referencing it must be removed first by the caller —
// constraints hold non-owning references and are never invalidated
// automatically.
func (w *World) Remove(b *RigidBody) error {
	if w.locked {
		return newError(KindInvalidConfiguration, "cannot Remove while World.Step is in progress")
	}
	if _, ok := w.bodies[b.ID]; !ok {
		return newError(KindDanglingReference, "body not owned by this World")
	}
	if b.node != noNode {
		w.tree.Remove(b.node)
		b.node = noNode
	}
	delete(w.bodies, b.ID)
	return nil
}

func (w *World) owns(b *RigidBody) bool {
	if b == nil {
		return true // one-body joints (Grab) leave B nil
	}
	owned, ok := w.bodies[b.ID]
	return ok && owned == b
}

// AddJoint validates the joint's body references (and, for Line/Prismatic,
// rejects a static/static pairing), then adds it to the World.
func (w *World) AddJoint(c Constraint) error {
	if w.locked {
		return newError(KindInvalidConfiguration, "cannot AddJoint while World.Step is in progress")
	}
	a, b := c.Bodies()
	if !w.owns(a) || !w.owns(b) {
		return newError(KindDanglingReference, "joint references a body not owned by this World")
	}
	switch j := c.(type) {
	case *LineJoint:
		if err := rejectStaticStatic(j.A, j.B); err != nil {
			return err
		}
	case *PrismaticJoint:
		if err := rejectStaticStatic(j.A, j.B); err != nil {
			return err
		}
	}
	w.joints = append(w.joints, c)
	return nil
}

// RemoveJoint drops a joint from the World. No-op if not present.
func (w *World) RemoveJoint(c Constraint) error {
	if w.locked {
		return newError(KindInvalidConfiguration, "cannot RemoveJoint while World.Step is in progress")
	}
	for i, existing := range w.joints {
		if existing == c {
			w.joints = append(w.joints[:i], w.joints[i+1:]...)
			return nil
		}
	}
	return nil
}

// QueryPoint returns every body whose leaf AABB contains p.
func (w *World) QueryPoint(p Vec2) []*RigidBody {
	ids := w.tree.QueryPoint(p)
	return w.resolve(ids)
}

// QueryRegion returns every body whose leaf AABB overlaps region.
func (w *World) QueryRegion(region AABB) []*RigidBody {
	ids := w.tree.QueryRegion(region)
	return w.resolve(ids)
}

// QueryRay returns every body whose leaf AABB is hit by the ray (origin o,
// direction d) within maxT.
func (w *World) QueryRay(o, d Vec2, maxT float64) []*RigidBody {
	ids := w.tree.QueryRay(o, d, maxT)
	return w.resolve(ids)
}

func (w *World) resolve(ids []BodyID) []*RigidBody {
	out := make([]*RigidBody, 0, len(ids))
	for _, id := range ids {
		if b, ok := w.bodies[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Cost exposes the tree's diagnostic cost scalar.
func (w *World) Cost() float64 { return w.tree.Cost() }

// Step advances the simulation by the configured FixedDeltaTime, in fixed
// order: integrate forces → refresh tree for moved bodies → broad phase →
// narrow phase → prepare constraints (joints then contacts) → N iterations
// of solve → integrate poses.
func (w *World) Step() Stats {
	dt := w.Config.FixedDeltaTime
	w.stamp++
	w.locked = true
	defer func() { w.locked = false }()

	for _, b := range w.bodies {
		b.integrateForces(w.Config.Gravity, dt)
	}

	w.refreshMovedBodies()

	pairs := w.tree.Pairs()

	var contacts []*ContactConstraint
	for _, pair := range pairs {
		a, aok := w.bodies[pair.A]
		b, bok := w.bodies[pair.B]
		if !aok || !bok {
			continue
		}
		if a.IsStatic() && b.IsStatic() {
			continue
		}
		m, ok := w.Config.Manifolder.Collide(a, b)
		if !ok || len(m.Points) == 0 {
			continue
		}
		cc := newContactConstraint(a, b, m, w.warmStart, w.Config.WarmStarting)
		contacts = append(contacts, cc)
	}

	for _, j := range w.joints {
		j.Prepare(w.Config, dt)
	}
	for _, c := range contacts {
		c.Prepare(w.Config, dt)
	}

	for i := 0; i < w.Config.VelocityIterations; i++ {
		for _, j := range w.joints {
			j.Solve(w.Config)
		}
		for _, c := range contacts {
			c.Solve(w.Config)
		}
	}

	if w.Config.WarmStarting {
		for _, c := range contacts {
			c.snapshot(w.warmStart, w.stamp)
		}
		w.evictStaleContacts()
	}

	for _, b := range w.bodies {
		b.integratePose(dt)
		b.clearForces()
	}

	stats := Stats{
		Stamp:              w.stamp,
		CandidatePairs:     len(pairs),
		ContactConstraints: len(contacts),
		JointConstraints:   len(w.joints),
		TreeCost:           w.tree.Cost(),
	}

	if debugChecks {
		if err := w.tree.CheckInvariants(); err != nil {
			w.Config.Logger.Error("tree invariant violation", "stamp", w.stamp, "error", err)
			panic(err)
		}
	}
	w.Config.Logger.Debug("physics step",
		"stamp", stats.Stamp,
		"candidatePairs", stats.CandidatePairs,
		"contactConstraints", stats.ContactConstraints,
		"jointConstraints", stats.JointConstraints,
		"treeCost", stats.TreeCost,
	)

	return stats
}

// refreshMovedBodies re-inserts any dynamic body's tree leaf whose world
// AABB is no longer contained by its current (margin-padded) leaf box.
func (w *World) refreshMovedBodies() {
	for _, b := range w.bodies {
		if b.Kind != Dynamic || b.node == noNode {
			continue
		}
		box := b.WorldAABB()
		leaf := w.tree.LeafAABB(b.node)
		if leaf.Contains(box) {
			continue
		}
		b.node = w.tree.Move(b.node, box, false)
	}
}

// evictStaleContacts drops warm-start cache entries older than
// Config.ContactPersistence ticks, so the cache does not grow without bound
// once shapes stop touching. A ContactPersistence of zero disables eviction.
func (w *World) evictStaleContacts() {
	if w.Config.ContactPersistence == 0 {
		return
	}
	for key, entry := range w.warmStart {
		if w.stamp-entry.lastStamp > w.Config.ContactPersistence {
			delete(w.warmStart, key)
		}
	}
}

// Momentum returns Σ m·v over every dynamic body, useful for checking
// conservation across a collision.
func (w *World) Momentum() Vec2 {
	sum := Vec2Zero()
	for _, b := range w.bodies {
		if b.Kind == Dynamic {
			sum = sum.Add(b.Vel.Scale(b.Mass()))
		}
	}
	return sum
}
