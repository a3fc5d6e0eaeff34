package archecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned for a stale, destroyed or never issued handle.
	ErrEntityNotFound = eris.New("entity not found")
	// ErrComponentExists is returned when adding a type the entity already has.
	ErrComponentExists = eris.New("component already on entity")
	// ErrComponentMissing is returned when removing or getting a type the entity lacks.
	ErrComponentMissing = eris.New("component not on entity")
	// ErrDuplicateComponent is returned when one call names the same type twice.
	ErrDuplicateComponent = eris.New("component type listed twice")
	// ErrResourceExists is returned when a World already holds a resource of that type.
	ErrResourceExists = eris.New("resource already in world")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = eris.New("invalid config")
)
