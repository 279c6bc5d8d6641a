package model

// Decorator adjusts a builder model after synthesis and before rendering,
// for example to rewrite doc comments.
type Decorator interface {
	Decorate(*BuilderModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*BuilderModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(m *BuilderModel) error {
	return fn(m)
}
