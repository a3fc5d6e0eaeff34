//go:build ecs_noassert

package archecs

const assertionsCompiled = false
