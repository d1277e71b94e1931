package schema

import (
	"maps"
	"slices"
)

// Definition is a named sub-schema.
type Definition struct {
	Name string
	Node Node
}

// Definitions is the registry of named sub-schemas.
// Re-adding a name overwrites the previous entry.
type Definitions map[string]Node

// Merge adds all definitions to the registry.
func (d Definitions) Merge(defs []Definition) {
	for _, def := range defs {
		d[def.Name] = def.Node
	}
}

// Names returns the definition names in lexicographic order.
func (d Definitions) Names() []string {
	return slices.Sorted(maps.Keys(d))
}
