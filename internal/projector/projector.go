// Package projector renders schema trees as OpenAPI 3 flavoured YAML.
//
// Optional values are marked with "nullable: true" instead of a union with the null type.
// Named sub-schemas are referenced with "$ref", see [WithRefPrefix].
package projector

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oapidoc/internal/schema"
)

// DefaultRefPrefix points references at OpenAPI 3 components.
const DefaultRefPrefix = "#/components/schemas/"

type options struct {
	refPrefix          string
	withoutDescription bool
}

type Option func(options options) options

// WithRefPrefix sets the prefix prepended to definition names in "$ref" values.
func WithRefPrefix(prefix string) Option {
	return func(options options) options {
		options.refPrefix = prefix
		return options
	}
}

// WithoutDescription suppresses the description of the rendered node itself.
// Descriptions of nested nodes are kept.
func WithoutDescription() Option {
	return func(options options) options {
		options.withoutDescription = true
		return options
	}
}

func newOptions(opts []Option) options {
	o := options{refPrefix: DefaultRefPrefix}
	for _, opt := range opts {
		o = opt(o)
	}
	return o
}

// Render returns the YAML representation of a single node.
func Render(node schema.Node, opts ...Option) (string, error) {
	o := newOptions(opts)
	if o.withoutDescription {
		node.Description = ""
	}
	return marshal(o.toYAML(node))
}

// RenderDefinitions returns the YAML mapping of definition names to their schemas,
// ordered by name. An empty registry renders as an empty string.
func RenderDefinitions(defs schema.Definitions, opts ...Option) (string, error) {
	if len(defs) == 0 {
		return "", nil
	}
	o := newOptions(opts)
	mapping := newMapping()
	for _, name := range defs.Names() {
		appendPair(mapping, name, o.toYAML(defs[name]))
	}
	return marshal(mapping)
}

// StripDescriptionLines removes every line containing "description:".
// The filter is textual, nested values containing the token are removed as well.
func StripDescriptionLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, "description:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func (o options) toYAML(node schema.Node) *yaml.Node {
	mapping := newMapping()
	if node.Description != "" {
		appendPair(mapping, "description", stringNode(node.Description))
	}
	switch node.Kind {
	case schema.KindPrimitive:
		appendPair(mapping, "type", stringNode(node.Type))
		if node.Format != "" {
			appendPair(mapping, "format", stringNode(node.Format))
		}
		if node.Minimum != nil {
			appendPair(mapping, "minimum", intNode(*node.Minimum))
		}
	case schema.KindReference:
		ref := newMapping()
		appendPair(ref, "$ref", stringNode(o.refPrefix+node.Ref))
		// Siblings of "$ref" are ignored by OpenAPI 3.0, hence the wrapping.
		if node.Description == "" && !node.Nullable {
			return ref
		}
		appendPair(mapping, "allOf", &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{ref}})
	case schema.KindArray:
		appendPair(mapping, "type", stringNode("array"))
		if node.Items != nil {
			appendPair(mapping, "items", o.toYAML(*node.Items))
		}
	case schema.KindObject:
		appendPair(mapping, "type", stringNode("object"))
		if len(node.Properties) > 0 {
			properties := newMapping()
			for _, prop := range node.Properties {
				appendPair(properties, prop.Name, o.toYAML(prop.Node))
			}
			appendPair(mapping, "properties", properties)
		}
		if required := node.Required(); len(required) > 0 {
			sequence := &yaml.Node{Kind: yaml.SequenceNode}
			for _, name := range required {
				sequence.Content = append(sequence.Content, stringNode(name))
			}
			appendPair(mapping, "required", sequence)
		}
	case schema.KindMap:
		appendPair(mapping, "type", stringNode("object"))
		if node.AdditionalProperties != nil {
			appendPair(mapping, "additionalProperties", o.toYAML(*node.AdditionalProperties))
		}
	case schema.KindAny:
	}
	if node.Nullable {
		appendPair(mapping, "nullable", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	return mapping
}

func marshal(node *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", errors.Wrapf(schema.ErrSerialization, "failed to encode YAML: %v", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrapf(schema.ErrSerialization, "failed to encode YAML: %v", err)
	}
	return strings.TrimSpace(strings.TrimPrefix(buf.String(), "---\n")), nil
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, stringNode(key), value)
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func intNode(value int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(value, 10)}
}
