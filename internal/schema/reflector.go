package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/oapidoc/internal/typeinfo"
)

// DocProvider supplies documentation of Go types and their struct fields.
type DocProvider interface {
	TypeDoc(typ reflect.Type) (string, error)
	FieldDoc(typ reflect.Type, field string) (string, error)
}

// DescriptionTag is the struct tag which overrides a field's documentation.
const DescriptionTag = "description"

// Result is the outcome of a single [Reflector.Reflect] call.
type Result struct {
	Root Node
	// Definitions holds every named struct reachable from Root, in discovery order.
	Definitions []Definition
}

// NewReflector creates a [Reflector].
// When docs is nil, only [DescriptionTag] supplies descriptions.
func NewReflector(docs DocProvider) *Reflector {
	return &Reflector{
		docs:  docs,
		names: make(map[reflect.Type]string),
		taken: make(map[string]reflect.Type),
	}
}

// Reflector converts Go types into schema trees.
// Definition names stay stable across calls, so types sharing a name
// in different packages never overwrite each other's definitions.
// It is not safe for concurrent use.
type Reflector struct {
	docs  DocProvider
	names map[reflect.Type]string
	taken map[string]reflect.Type
}

// Reflect returns the schema of the given type.
// A struct root is inlined, every other named struct becomes a reference.
func (r *Reflector) Reflect(typ reflect.Type) (Result, error) {
	if typ == nil {
		return Result{}, errors.Wrap(ErrUnsupportedType, "nil type")
	}
	mapper := newTypeMapper(r)
	root, err := mapper.Root(typ)
	if err != nil {
		return Result{}, err
	}
	return Result{Root: root, Definitions: mapper.definitions}, nil
}

func (r *Reflector) definitionName(typ reflect.Type) string {
	if name, ok := r.names[typ]; ok {
		return name
	}
	info := typeinfo.Get(typ)
	name := info.DefinitionName()
	if other, ok := r.taken[name]; ok && other != typ {
		name = info.QualifiedDefinitionName()
	}
	// Function-local types and generic instantiations can share the qualified name too.
	base := name
	for i := 2; ; i++ {
		if other, ok := r.taken[name]; !ok || other == typ {
			break
		}
		name = base + "_" + strconv.Itoa(i)
	}
	r.names[typ] = name
	r.taken[name] = typ
	return name
}

func (r *Reflector) typeDoc(typ reflect.Type) (string, error) {
	if r.docs == nil {
		return "", nil
	}
	doc, err := r.docs.TypeDoc(typ)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s documentation", typ)
	}
	return strings.TrimSpace(doc), nil
}

func (r *Reflector) fieldDoc(owner reflect.Type, field reflect.StructField) (string, error) {
	if desc, ok := field.Tag.Lookup(DescriptionTag); ok {
		return strings.TrimSpace(desc), nil
	}
	if r.docs == nil {
		return "", nil
	}
	doc, err := r.docs.FieldDoc(owner, field.Name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s.%s documentation", owner, field.Name)
	}
	return strings.TrimSpace(doc), nil
}

func newTypeMapper(r *Reflector) *typeMapper {
	return &typeMapper{
		reflector: r,
		visited:   make(map[reflect.Type]bool),
	}
}

// typeMapper walks a single type tree, collecting definitions on the way.
type typeMapper struct {
	reflector   *Reflector
	visited     map[reflect.Type]bool
	definitions []Definition
}

func (m *typeMapper) Root(typ reflect.Type) (Node, error) {
	nullable := false
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		nullable = true
	}
	if typ.Kind() != reflect.Struct || typ == timeType {
		node, err := m.Map(typ)
		node.Nullable = nullable
		return node, err
	}
	node, err := m.object(typ)
	if err != nil {
		return Node{}, err
	}
	if node.Description, err = m.reflector.typeDoc(typ); err != nil {
		return Node{}, err
	}
	node.Nullable = nullable
	return node, nil
}

var (
	timeType  = reflect.TypeFor[time.Time]()
	zeroValue = int64(0)
)

// Map returns the node for the type, pointers are reported as nullable.
func (m *typeMapper) Map(typ reflect.Type) (Node, error) {
	nullable := false
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		nullable = true
	}
	node, err := m.mapType(typ)
	if err != nil {
		return Node{}, err
	}
	node.Nullable = node.Nullable || nullable
	return node, nil
}

func (m *typeMapper) mapType(typ reflect.Type) (Node, error) {
	if typ == timeType {
		return primitive("string", "date-time"), nil
	}
	switch typ.Kind() {
	case reflect.Bool:
		return primitive("boolean", ""), nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return primitive("integer", "int32"), nil
	case reflect.Int, reflect.Int64:
		return primitive("integer", "int64"), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		node := primitive("integer", unsignedFormat(typ.Kind()))
		node.Minimum = &zeroValue
		return node, nil
	case reflect.Float32:
		return primitive("number", "float"), nil
	case reflect.Float64:
		return primitive("number", "double"), nil
	case reflect.String:
		return primitive("string", ""), nil
	case reflect.Interface:
		return Node{Kind: KindAny}, nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return primitive("string", "byte"), nil
		}
		return m.array(typ)
	case reflect.Array:
		return m.array(typ)
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return Node{}, errors.Wrapf(ErrUnsupportedType, "map key of %s must be a string", typ)
		}
		values, err := m.Map(typ.Elem())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindMap, AdditionalProperties: &values}, nil
	case reflect.Struct:
		if typ.Name() == "" {
			return m.object(typ)
		}
		return m.reference(typ)
	default:
		return Node{}, errors.Wrapf(ErrUnsupportedType, "%s", typ)
	}
}

func (m *typeMapper) array(typ reflect.Type) (Node, error) {
	items, err := m.Map(typ.Elem())
	if err != nil {
		return Node{}, err
	}
	return Node{Kind: KindArray, Items: &items}, nil
}

func (m *typeMapper) reference(typ reflect.Type) (Node, error) {
	name := m.reflector.definitionName(typ)
	if m.visited[typ] {
		return Node{Kind: KindReference, Ref: name}, nil
	}
	m.visited[typ] = true
	node, err := m.object(typ)
	if err != nil {
		return Node{}, err
	}
	if node.Description, err = m.reflector.typeDoc(typ); err != nil {
		return Node{}, err
	}
	m.definitions = append(m.definitions, Definition{Name: name, Node: node})
	return Node{Kind: KindReference, Ref: name}, nil
}

func (m *typeMapper) object(typ reflect.Type) (Node, error) {
	node := Node{Kind: KindObject}
	// Fields promoted through an embedded struct with an explicit name
	// belong to that struct's own schema.
	var namedEmbeds [][]int
	for _, field := range reflect.VisibleFields(typ) {
		if isBelow(field.Index, namedEmbeds) {
			continue
		}
		if field.Anonymous {
			name, tagged := jsonName(field)
			switch {
			case name == "-":
				namedEmbeds = append(namedEmbeds, field.Index)
				continue
			case !tagged && isStruct(field.Type):
				// Flattened, the promoted fields are visited on their own.
				continue
			}
			namedEmbeds = append(namedEmbeds, field.Index)
		}
		name, ok := fieldName(field)
		if !ok {
			continue
		}
		owner := ownerType(typ, field.Index)
		prop, err := m.Map(field.Type)
		if err != nil {
			return Node{}, errors.Wrapf(err, "failed to map %s.%s", typ, field.Name)
		}
		if prop.Description, err = m.reflector.fieldDoc(owner, field); err != nil {
			return Node{}, err
		}
		node.Properties = append(node.Properties, Property{Name: name, Node: prop})
	}
	return node, nil
}

func primitive(typ, format string) Node {
	return Node{Kind: KindPrimitive, Type: typ, Format: format}
}

func unsignedFormat(kind reflect.Kind) string {
	switch kind {
	case reflect.Uint8:
		return "uint8"
	case reflect.Uint16:
		return "uint16"
	case reflect.Uint32:
		return "uint32"
	case reflect.Uint64:
		return "uint64"
	default:
		return "uint"
	}
}

// fieldName returns the serialized name of the field.
// The second value is false for fields which are not serialized.
func fieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	name, tagged := jsonName(field)
	if name == "-" {
		return "", false
	}
	if !tagged {
		name = field.Name
	}
	return name, true
}

// jsonName returns the name from the json tag, if one was set.
func jsonName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	return name, name != ""
}

func isStruct(typ reflect.Type) bool {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Kind() == reflect.Struct && typ != timeType
}

func isBelow(index []int, parents [][]int) bool {
	for _, parent := range parents {
		if len(index) > len(parent) && hasPrefix(index, parent) {
			return true
		}
	}
	return false
}

func hasPrefix(s, prefix []int) bool {
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

// ownerType returns the struct type which declares the field at index.
func ownerType(typ reflect.Type, index []int) reflect.Type {
	for _, i := range index[:len(index)-1] {
		typ = typ.Field(i).Type
		for typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
	}
	return typ
}
