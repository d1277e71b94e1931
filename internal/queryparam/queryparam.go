// Package queryparam formats object schemas as lists of OpenAPI query parameters.
package queryparam

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oapidoc/internal/projector"
	"github.com/nieomylnieja/oapidoc/internal/schema"
	"github.com/nieomylnieja/oapidoc/internal/substitute"
)

const schemaIndent = "    "

type options struct {
	projectorOptions        []projector.Option
	legacyDescriptionFilter bool
}

type Option func(options options) options

// WithProjectorOptions passes options to the [projector.Render] call rendering each parameter's schema.
func WithProjectorOptions(opts ...projector.Option) Option {
	return func(options options) options {
		options.projectorOptions = append(options.projectorOptions, opts...)
		return options
	}
}

// WithLegacyDescriptionFilter removes descriptions from parameter schemas by dropping
// every rendered line containing "description:", see [projector.StripDescriptionLines].
// By default only the parameter schema's own description is suppressed.
func WithLegacyDescriptionFilter() Option {
	return func(options options) options {
		options.legacyDescriptionFilter = true
		return options
	}
}

// Format returns one query parameter entry per property of the object node,
// in declaration order. The property description is moved from the schema
// to the parameter itself.
//
// Only the description of the parameter's own schema is removed by default.
// Descriptions of nested schemas, like the fields of an inline struct, stay in
// the "schema" block. Use [WithLegacyDescriptionFilter] to drop every
// "description:" line from it.
func Format(node schema.Node, opts ...Option) (string, error) {
	if node.Kind != schema.KindObject {
		return "", errors.Wrapf(schema.ErrUnsupportedSchemaKind,
			"query parameters can only be generated for object schemas, got %s", node.Kind)
	}
	o := options{}
	for _, opt := range opts {
		o = opt(o)
	}
	entries := make([]string, 0, len(node.Properties))
	for _, prop := range node.Properties {
		entry, err := o.formatParameter(prop)
		if err != nil {
			return "", errors.Wrapf(err, "failed to format %s query parameter", prop.Name)
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, "\n"), nil
}

func (o options) formatParameter(prop schema.Property) (string, error) {
	var b strings.Builder
	b.WriteString("- in: query\n")
	b.WriteString("  name: " + prop.Name + "\n")
	if description := strings.TrimSpace(prop.Node.Description); description != "" {
		line, err := descriptionEntry(description)
		if err != nil {
			return "", err
		}
		b.WriteString("  " + substitute.Indent("  ", line) + "\n")
	}
	b.WriteString("  required: " + required(prop.Node) + "\n")
	schemaYAML, err := o.renderSchema(prop.Node)
	if err != nil {
		return "", err
	}
	b.WriteString("  schema:\n" + schemaIndent + substitute.Indent(schemaIndent, schemaYAML))
	return b.String(), nil
}

func (o options) renderSchema(node schema.Node) (string, error) {
	if o.legacyDescriptionFilter {
		text, err := projector.Render(node, o.projectorOptions...)
		if err != nil {
			return "", err
		}
		return projector.StripDescriptionLines(text), nil
	}
	opts := append(o.projectorOptions[:len(o.projectorOptions):len(o.projectorOptions)], projector.WithoutDescription())
	return projector.Render(node, opts...)
}

// required renders the parameter's "required" value.
// Unconstrained schemas carry no nullability information and are treated as optional.
func required(node schema.Node) string {
	if node.Nullable || node.Kind == schema.KindAny {
		return "false"
	}
	return "true"
}

// descriptionEntry encodes the description so that it stays valid YAML,
// quoting or folding it when needed.
func descriptionEntry(description string) (string, error) {
	data, err := yaml.Marshal(map[string]string{"description": description})
	if err != nil {
		return "", errors.Wrapf(schema.ErrSerialization, "failed to encode description: %v", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
