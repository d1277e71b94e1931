package oapidoc

import (
	"github.com/pkg/errors"

	"github.com/nieomylnieja/oapidoc/internal/schema"
)

var (
	// ErrUnsupportedSchemaKind is returned when query parameters are requested for a type which is not a struct.
	ErrUnsupportedSchemaKind = schema.ErrUnsupportedSchemaKind
	// ErrUnsupportedType is returned for Go types which have no schema representation, like channels.
	ErrUnsupportedType = schema.ErrUnsupportedType
	// ErrSerialization is returned when a schema or value cannot be encoded as YAML.
	ErrSerialization = schema.ErrSerialization
	// ErrReservedPlaceholder is returned in strict mode for registrations under [DefinitionsPlaceholder].
	ErrReservedPlaceholder = errors.New("reserved placeholder name")
	// ErrInvalidPlaceholder is returned in strict mode for malformed placeholder names.
	ErrInvalidPlaceholder = errors.New("invalid placeholder name")
)
