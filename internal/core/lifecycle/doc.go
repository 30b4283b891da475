// Package lifecycle defines the docker lifecycle contract any provider may
// implement, and the operations derived from its primitives.
//
// Primitives (build, run, stop) are independent: a primitive whose Can
// method reports false is unsupported for that environment. Restart is
// derived from stop and run unless the implementer also satisfies
// Restarter. Upgrade is unsupported unless the implementer satisfies
// Upgrader.
//
// Derived operations are package functions and always compose the
// implementer's own primitives.
package lifecycle
