package model

// Decorator enriches a row template with additional metadata before rendering.
type Decorator interface {
	Decorate(*RowTemplate) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*RowTemplate) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(template *RowTemplate) error {
	return fn(template)
}
