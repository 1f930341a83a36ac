//go:build debug

package physics

// debugChecks gates the post-refit invariant walk in World.Step. Enabled by
// building with -tags debug; off by default so release builds never pay for
// the extra tree traversal.
const debugChecks = true
