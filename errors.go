package depot

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey is returned for an empty component list or an empty name inside one.
	ErrEmptyKey = errors.New("depot: empty component list")
	// ErrComponentLimit is returned when a world already holds MaxComponents registrations.
	ErrComponentLimit = errors.New("depot: component limit reached")
	// ErrInvalidSize is returned when a component is registered with a size below one byte.
	ErrInvalidSize = errors.New("depot: component size must be positive")
	// ErrInvalidName is returned for component names that cannot appear in a component list.
	ErrInvalidName = errors.New("depot: invalid component name")
	// ErrNilSystem is returned when a system is registered without a callback.
	ErrNilSystem = errors.New("depot: nil system func")
	// ErrWorldDestroyed is returned by every operation on a destroyed world.
	ErrWorldDestroyed = errors.New("depot: world destroyed")
)

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is locked while a tick is in progress"
}

type InvalidEntityError struct {
	Entity EntityID
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("entity %v is not alive", e.Entity)
}

type ComponentExistsError struct {
	Name string
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %s", e.Name)
}

type ComponentNotFoundError struct {
	Name string
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", e.Name)
}

type DuplicateComponentError struct {
	Name string
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component listed more than once: %s", e.Name)
}

type UnknownComponentError struct {
	Name string
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("component is not registered: %s", e.Name)
}

type AlreadyRegisteredError struct {
	Name string
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("component already registered: %s", e.Name)
}

type SizeMismatchError struct {
	Name      string
	Want, Got int
}

func (e SizeMismatchError) Error() string {
	return fmt.Sprintf("component %s holds %d bytes, got %d", e.Name, e.Want, e.Got)
}
