package infer

import "fmt"

// TypeMismatchError is returned when the input is not a supported
// tabular container.
type TypeMismatchError struct {
	Value interface{}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("infer: unsupported dataset type %T, expected *frame.Frame or *records.Set", e.Value)
}
