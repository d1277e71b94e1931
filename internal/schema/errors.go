package schema

import "github.com/pkg/errors"

var (
	// ErrUnsupportedType is returned by the [Reflector] for Go types which have no schema representation.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnsupportedSchemaKind is returned when an operation receives a node of the wrong [Kind].
	ErrUnsupportedSchemaKind = errors.New("unsupported schema kind")
	// ErrSerialization is returned when a schema cannot be serialized.
	ErrSerialization = errors.New("serialization failure")
)
