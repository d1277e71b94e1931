package oapidoc

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oapidoc/internal/godoc"
	"github.com/nieomylnieja/oapidoc/internal/projector"
	"github.com/nieomylnieja/oapidoc/internal/queryparam"
	"github.com/nieomylnieja/oapidoc/internal/schema"
	"github.com/nieomylnieja/oapidoc/internal/substitute"
)

// DefinitionsPlaceholder is the reserved placeholder holding every named sub-schema
// discovered while registering schemas and query parameters.
const DefinitionsPlaceholder = "oapidoc::definitions"

// Generator accumulates named placeholders and renders them into templates.
// It is not safe for concurrent use, each concurrent render needs its own Generator.
type Generator struct {
	options      options
	logger       *slog.Logger
	placeholders []substitute.Placeholder
	index        map[string]int
	definitions  schema.Definitions
	reflector    *schema.Reflector
}

// New creates an empty [Generator].
func New(opts ...Option) *Generator {
	o := options{refPrefix: projector.DefaultRefPrefix}
	for _, opt := range opts {
		o = opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		options:     o,
		logger:      logger,
		index:       make(map[string]int),
		definitions: make(schema.Definitions),
	}
}

// Register sets the placeholder to the given text, overwriting any previous value.
func (g *Generator) Register(name, text string) error {
	if err := g.validateName(name); err != nil {
		return err
	}
	g.set(name, text)
	g.logger.Debug("registered placeholder", slog.String("name", name))
	return nil
}

// Set encodes the value as YAML and registers it under the given name.
func (g *Generator) Set(name string, value any) error {
	if err := g.validateName(name); err != nil {
		return err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrapf(ErrSerialization, "failed to encode %s value: %v", name, err)
	}
	g.set(name, strings.TrimSpace(string(data)))
	g.logger.Debug("registered value", slog.String("name", name), slog.String("type", fmt.Sprintf("%T", value)))
	return nil
}

// RegisterSchema registers the schema of T under the given name.
// Named structs reachable from T are added to the definitions.
func RegisterSchema[T any](g *Generator, name string) error {
	return g.RegisterSchemaOf(name, reflect.TypeFor[T]())
}

// RegisterQueryParams registers the query parameters described by the fields of T under the given name.
// T must be a struct.
func RegisterQueryParams[T any](g *Generator, name string) error {
	return g.RegisterQueryParamsOf(name, reflect.TypeFor[T]())
}

// RegisterSchemaOf is the [reflect.Type] based version of [RegisterSchema].
func (g *Generator) RegisterSchemaOf(name string, typ reflect.Type) error {
	if err := g.validateName(name); err != nil {
		return err
	}
	result, err := g.reflect(typ)
	if err != nil {
		return errors.Wrapf(err, "failed to register %s schema", name)
	}
	text, err := projector.Render(result.Root, g.projectorOptions()...)
	if err != nil {
		return errors.Wrapf(err, "failed to register %s schema", name)
	}
	g.commit(name, text, result.Definitions)
	g.logger.Debug("registered schema",
		slog.String("name", name),
		slog.String("type", typ.String()),
		slog.Int("definitions", len(result.Definitions)))
	return nil
}

// RegisterQueryParamsOf is the [reflect.Type] based version of [RegisterQueryParams].
func (g *Generator) RegisterQueryParamsOf(name string, typ reflect.Type) error {
	if err := g.validateName(name); err != nil {
		return err
	}
	result, err := g.reflect(typ)
	if err != nil {
		return errors.Wrapf(err, "failed to register %s query parameters", name)
	}
	opts := []queryparam.Option{queryparam.WithProjectorOptions(g.projectorOptions()...)}
	if g.options.legacyDescriptionFilter {
		opts = append(opts, queryparam.WithLegacyDescriptionFilter())
	}
	text, err := queryparam.Format(result.Root, opts...)
	if err != nil {
		return errors.Wrapf(err, "failed to register %s query parameters", name)
	}
	g.commit(name, text, result.Definitions)
	g.logger.Debug("registered query parameters",
		slog.String("name", name),
		slog.String("type", typ.String()),
		slog.Int("parameters", len(result.Root.Properties)))
	return nil
}

// Placeholders returns the names of the registered placeholders in registration order.
// [DefinitionsPlaceholder] is not included.
func (g *Generator) Placeholders() []string {
	names := make([]string, 0, len(g.placeholders))
	for _, ph := range g.placeholders {
		names = append(names, ph.Name)
	}
	return names
}

// Definitions returns the names of the collected definitions, sorted.
func (g *Generator) Definitions() []string {
	return g.definitions.Names()
}

// Render substitutes the registered placeholders and the definitions in the template.
// Placeholders are substituted in registration order, [DefinitionsPlaceholder] last.
// Unknown placeholders are left untouched.
// The Generator is not modified, rendering can be repeated.
func (g *Generator) Render(template string) (string, error) {
	definitions, err := projector.RenderDefinitions(g.definitions, g.projectorOptions()...)
	if err != nil {
		return "", errors.Wrap(err, "failed to render definitions")
	}
	placeholders := make([]substitute.Placeholder, 0, len(g.placeholders)+1)
	for _, ph := range g.placeholders {
		if ph.Name == DefinitionsPlaceholder {
			continue
		}
		placeholders = append(placeholders, ph)
	}
	placeholders = append(placeholders, substitute.Placeholder{Name: DefinitionsPlaceholder, Value: definitions})
	g.logger.Debug("rendering template",
		slog.Int("placeholders", len(placeholders)),
		slog.Int("definitions", len(g.definitions)))
	return substitute.Render(template, placeholders), nil
}

func (g *Generator) reflect(typ reflect.Type) (schema.Result, error) {
	if g.reflector == nil {
		docs, err := g.docProvider()
		if err != nil {
			return schema.Result{}, err
		}
		g.reflector = schema.NewReflector(docs)
	}
	return g.reflector.Reflect(typ)
}

func (g *Generator) docProvider() (schema.DocProvider, error) {
	switch {
	case g.options.docProvider != nil:
		return g.options.docProvider, nil
	case g.options.goDoc:
		g.logger.Debug("loading Go packages", slog.String("dir", g.options.goDocDir))
		parser, err := godoc.NewParser(g.options.goDocDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load godoc comments")
		}
		return parser, nil
	default:
		return nil, nil
	}
}

func (g *Generator) projectorOptions() []projector.Option {
	return []projector.Option{projector.WithRefPrefix(g.options.refPrefix)}
}

func (g *Generator) validateName(name string) error {
	if !g.options.strictPlaceholderNames {
		return nil
	}
	return validatePlaceholderName(name)
}

// commit stores the results of a successful registration.
func (g *Generator) commit(name, text string, definitions []schema.Definition) {
	g.definitions.Merge(definitions)
	g.set(name, text)
}

func (g *Generator) set(name, text string) {
	if i, ok := g.index[name]; ok {
		g.placeholders[i].Value = text
		return
	}
	g.index[name] = len(g.placeholders)
	g.placeholders = append(g.placeholders, substitute.Placeholder{Name: name, Value: text})
}
