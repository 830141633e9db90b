package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("entity not found")
	ErrValidation    = errors.New("invalid entity")
	ErrDuplicateName = errors.New("name already in use")
	ErrDefaultPage   = errors.New("default pages cannot be deleted")
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrUnknownAction = errors.New("unknown action")
)

// InUseError is returned when deleting a category or farm that products
// still reference.
type InUseError struct {
	Kind  string // "category" or "farm"
	Name  string
	Count int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: used by %d product(s)", e.Kind, e.Name, e.Count)
}

// ValidationError lists every problem found on one entity. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(problem string, args ...any) error {
	return &ValidationError{Problems: []string{fmt.Sprintf(problem, args...)}}
}

func notFound(entity string, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

func duplicate(entity, name string) error {
	return fmt.Errorf("%w: %s %q already exists", ErrDuplicateName, entity, name)
}
