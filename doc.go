// Package physics is a 2D rigid-body physics core: a dynamic AABB tree
// broad phase and a sequential-impulse constraint solver for contacts and
// joints (distance, grab, weld, line, prismatic).
//
// The solver follows the usual prepare/solve/applyImpulse structure with
// warm starting and Baumgarte position correction; the broad phase is a
// dynamic tree that maintains its balance through SAH-guided local
// rotations rather than periodic full rebuilds. Sleeping and island
// partitioning are intentionally out of scope (see DESIGN.md).
//
//	vec2.go, mat22.go, mat33.go : math primitives
//	aabb.go                     : AABB type
//	node.go, tree.go            : dynamic AABB tree (broad phase)
//	shape.go, manifold.go       : reference narrow phase (circle, polygon)
//	body.go                     : RigidBody state and integration
//	constraint.go               : shared prepare/solve/applyImpulse contract
//	contact.go                  : per-manifold contact constraint
//	joint_*.go                  : joint constraints
//	config.go, errors.go        : configuration and typed errors
//	world.go                    : step driver, ownership, queries
package physics
