//go:build !ecs_noassert

package archecs

// assertionsCompiled is false when built with -tags ecs_noassert, which
// removes every precondition check from the binary.
const assertionsCompiled = true
