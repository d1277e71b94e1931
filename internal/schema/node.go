// Package schema describes the normalized schema tree produced from Go types
// and the registry of named sub-schemas discovered while producing it.
package schema

// Kind tells which variant of [Node] is populated.
type Kind int

const (
	// KindAny is an unconstrained schema; any value matches it.
	KindAny Kind = iota
	KindPrimitive
	KindArray
	KindObject
	// KindMap is an object with arbitrary keys, described by its additional properties.
	KindMap
	// KindReference points at a named [Definition].
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Node is a single schema node.
// Only the fields relevant for its [Kind] are set.
type Node struct {
	Kind Kind
	// Type is the OpenAPI primitive type: string, integer, number or boolean.
	Type   string
	Format string
	// Minimum is set for unsigned integers.
	Minimum *int64
	// Items holds the element schema of [KindArray].
	Items *Node
	// Properties holds the fields of [KindObject] in declaration order.
	Properties []Property
	// AdditionalProperties holds the value schema of [KindMap].
	AdditionalProperties *Node
	// Ref is the name of the referenced definition.
	Ref string

	Description string
	// Nullable marks an optional value (a Go pointer).
	Nullable bool
}

// Property is a named field of an object node.
type Property struct {
	Name string
	Node Node
}

// Required lists the names of the object's non-nullable properties.
func (n Node) Required() []string {
	var required []string
	for _, prop := range n.Properties {
		if !prop.Node.Nullable {
			required = append(required, prop.Name)
		}
	}
	return required
}

// Property returns the object's property by name.
func (n Node) Property(name string) (Node, bool) {
	for _, prop := range n.Properties {
		if prop.Name == name {
			return prop.Node, true
		}
	}
	return Node{}, false
}
