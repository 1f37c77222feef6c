package usecase

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrInvalidArgument   = errors.New("invalid argument")
)

const (
	reasonChatIdRequired = "chat room ID required"
	reasonInvalidPage    = "page must be a positive integer greater than 0"
	reasonUserIdRequired = `User does not contain the property "_id"`
)

// MissingDependencyError is returned by a constructor when a required
// collaborator was not supplied.
type MissingDependencyError struct {
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s is required", e.Dependency)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// InvalidArgumentError reports caller input that failed validation.
// Error returns the reason unchanged so it can be shown to the caller.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func newInvalidArgument(reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: reason}
}

// NewInvalidPageError is the page validation failure, exported for
// transports that reject an unparsable page before reaching a use case.
func NewInvalidPageError() error {
	return newInvalidArgument(reasonInvalidPage)
}

// isMissing reports whether dependency is nil, including a typed nil
// pointer wrapped in an interface.
func isMissing(dependency any) bool {
	if dependency == nil {
		return true
	}
	v := reflect.ValueOf(dependency)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
