package depot

// Storage is the outside-tick surface of a World. Every method fails with
// LockedWorldError while a tick is in progress.
type Storage interface {
	RegisterComponent(name string, size int) (Component, error)
	RegisterSystem(name string, fn SystemFunc, required string) error
	NewEntity() (EntityID, error)
	MarkDelete(EntityID) error
	AddComponents(e EntityID, components string) error
	RemoveComponents(e EntityID, components string) error
	Get(e EntityID, name string) ([]byte, error)
	Set(e EntityID, name string, value []byte) error
	Has(EntityID) bool
	Progress() error
	Locked() bool
}

// Scope is what a system may do while a tick runs. Structural changes made through it are
// deferred to the end of the tick.
type Scope interface {
	CreateEntity() EntityID
	Delete(EntityID) error
	Has(EntityID) bool
	Sequential() *Cursor
	Vectorize() View
}
