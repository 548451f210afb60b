package metadata

import (
	"fmt"
)

// ValidationError is returned when an entity cannot be constructed from the
// values given, e.g. an unknown language tag or a malformed URI. No entity is
// produced when it is returned.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (err ValidationError) Error() string {
	if err.Value == "" {
		return fmt.Sprintf("invalid %s: %s", err.Field, err.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", err.Field, err.Value, err.Message)
}

func validationErrorf(field, value, format string, args ...interface{}) error {
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseError is returned when an embedded metadata document does not follow
// the dialect expected by the importer. Ingestion is aborted.
type ParseError struct {
	Path    string
	Message string
}

func (err ParseError) Error() string {
	return fmt.Sprintf("cannot parse property %q: %s", err.Path, err.Message)
}

// SchemaDriftError signals that the projection of an entity and the schema
// that describes it are out of sync. It is a programming error.
type SchemaDriftError struct {
	Entity  string
	Field   string
	Message string
}

func (err SchemaDriftError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("schema drift in %s: %s", err.Entity, err.Message)
	}
	return fmt.Sprintf("schema drift in %s.%s: %s", err.Entity, err.Field, err.Message)
}
