package oapidoc

import (
	"log/slog"
	"reflect"
)

// DocProvider supplies descriptions of Go types and their struct fields.
// Fields are identified by their Go names.
type DocProvider interface {
	TypeDoc(typ reflect.Type) (string, error)
	FieldDoc(typ reflect.Type, field string) (string, error)
}

// options contains options for configuring the behavior of the [Generator].
type options struct {
	logger                  *slog.Logger
	goDoc                   bool
	goDocDir                string
	docProvider             DocProvider
	refPrefix               string
	legacyDescriptionFilter bool
	strictPlaceholderNames  bool
}

type Option func(options options) options

// WithLogger sets the logger used to report registrations and renders.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(options options) options {
		options.logger = logger
		return options
	}
}

// WithGoDocComments makes godoc comments of types and struct fields the source of schema descriptions.
// The comments are read from the sources of the Go module enclosing dir,
// an empty dir means the current working directory.
// Packages are loaded on the first registration which needs them.
func WithGoDocComments(dir string) Option {
	return func(options options) options {
		options.goDoc = true
		options.goDocDir = dir
		return options
	}
}

// WithDocProvider sets a custom source of schema descriptions.
// It takes precedence over [WithGoDocComments].
func WithDocProvider(provider DocProvider) Option {
	return func(options options) options {
		options.docProvider = provider
		return options
	}
}

// WithRefPrefix sets the prefix of "$ref" values pointing at definitions.
// Defaults to "#/components/schemas/".
func WithRefPrefix(prefix string) Option {
	return func(options options) options {
		options.refPrefix = prefix
		return options
	}
}

// WithLegacyDescriptionFilter removes descriptions from query parameter schemas
// by dropping every line containing "description:", instead of suppressing
// only the parameter schema's own description.
func WithLegacyDescriptionFilter() Option {
	return func(options options) options {
		options.legacyDescriptionFilter = true
		return options
	}
}

// WithStrictPlaceholderNames validates placeholder names on registration.
// Names must be identifiers and must not collide with [DefinitionsPlaceholder].
// Without it, a placeholder registered under [DefinitionsPlaceholder] is silently replaced on render.
func WithStrictPlaceholderNames() Option {
	return func(options options) options {
		options.strictPlaceholderNames = true
		return options
	}
}
