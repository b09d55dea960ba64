package depot

type factory struct{}

var Factory factory

// NewWorld builds a world from DefaultConfig adjusted by opts.
func (f factory) NewWorld(opts ...WorldOption) (*World, error) {
	return newWorld(opts...)
}

// FactoryNewAccessor binds T to the named component of w. T must be exactly as large as
// the component.
func FactoryNewAccessor[T any](w *World, name string) (Accessor[T], error) {
	return newAccessor[T](w, name)
}
