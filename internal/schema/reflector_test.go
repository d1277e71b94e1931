package schema

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/oapidoc/internal/godoc"
	"github.com/nieomylnieja/oapidoc/internal/testmodels"
	"github.com/nieomylnieja/oapidoc/internal/testmodels/moremodels"
)

type staticDocs struct {
	types  map[reflect.Type]string
	fields map[reflect.Type]map[string]string
}

func (s staticDocs) TypeDoc(typ reflect.Type) (string, error) {
	return s.types[typ], nil
}

func (s staticDocs) FieldDoc(typ reflect.Type, field string) (string, error) {
	return s.fields[typ][field], nil
}

type failingDocs struct{}

func (failingDocs) TypeDoc(reflect.Type) (string, error) { return "", errors.New("boom") }

func (failingDocs) FieldDoc(reflect.Type, string) (string, error) { return "", errors.New("boom") }

func ptr[T any](v T) *T { return &v }

func TestReflector_Reflect_SearchResponse(t *testing.T) {
	result, err := NewReflector(nil).Reflect(reflect.TypeOf(testmodels.SearchResponse{}))
	require.NoError(t, err)

	itemRef := Node{Kind: KindReference, Ref: "Item"}
	assert.Equal(t, Node{
		Kind: KindObject,
		Properties: []Property{
			{Name: "success", Node: Node{Kind: KindPrimitive, Type: "boolean"}},
			{Name: "count", Node: Node{Kind: KindPrimitive, Type: "integer", Format: "int64"}},
			{Name: "items", Node: Node{Kind: KindArray, Items: &itemRef}},
		},
	}, result.Root)

	require.Len(t, result.Definitions, 2)
	user := result.Definitions[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, []string{"id", "staff", "tags"}, user.Node.Required())
	id, _ := user.Node.Property("id")
	assert.Equal(t, Node{Kind: KindPrimitive, Type: "integer", Format: "uint", Minimum: ptr(int64(0))}, id)

	item := result.Definitions[1]
	assert.Equal(t, "Item", item.Name)
	width, _ := item.Node.Property("width")
	assert.Equal(t, Node{Kind: KindPrimitive, Type: "number", Format: "double", Nullable: true}, width)
	owner, _ := item.Node.Property("owner")
	assert.Equal(t, Node{Kind: KindReference, Ref: "User"}, owner)
	assert.Equal(t, []string{"id", "owner"}, item.Node.Required())
}

func TestReflector_Reflect_Recursive(t *testing.T) {
	result, err := NewReflector(nil).Reflect(reflect.TypeOf(&testmodels.Category{}))
	require.NoError(t, err)

	assert.Equal(t, KindObject, result.Root.Kind)
	assert.True(t, result.Root.Nullable)
	parent, ok := result.Root.Property("parent")
	require.True(t, ok)
	assert.Equal(t, Node{Kind: KindReference, Ref: "Category", Nullable: true}, parent)

	require.Len(t, result.Definitions, 1)
	assert.Equal(t, "Category", result.Definitions[0].Name)
	children, _ := result.Definitions[0].Node.Property("children")
	assert.Equal(t, KindArray, children.Kind)
	assert.Equal(t, "Category", children.Items.Ref)
}

func TestReflector_Reflect_Article(t *testing.T) {
	docs := staticDocs{
		types: map[reflect.Type]string{
			reflect.TypeOf(testmodels.Article{}): "Article is a blog post.\n",
			reflect.TypeOf(moremodels.User{}):    "User is an external reviewer.",
		},
		fields: map[reflect.Type]map[string]string{
			reflect.TypeOf(testmodels.Timestamps{}): {"CreatedAt": "Set on creation."},
			reflect.TypeOf(testmodels.Article{}):    {"Title": "Ignored, the tag wins.", "Meta": "Annotations."},
		},
	}
	result, err := NewReflector(docs).Reflect(reflect.TypeOf(testmodels.Article{}))
	require.NoError(t, err)

	root := result.Root
	assert.Equal(t, "Article is a blog post.", root.Description)
	names := make([]string, 0, len(root.Properties))
	for _, prop := range root.Properties {
		names = append(names, prop.Name)
	}
	assert.Equal(t, []string{"createdAt", "updatedAt", "title", "meta", "extra", "body", "author", "reviewer"}, names)

	tests := map[string]Node{
		"createdAt": {Kind: KindPrimitive, Type: "string", Format: "date-time", Description: "Set on creation."},
		"updatedAt": {Kind: KindPrimitive, Type: "string", Format: "date-time", Nullable: true},
		"title":     {Kind: KindPrimitive, Type: "string", Description: "Headline shown on the front page."},
		"meta": {
			Kind:                 KindMap,
			AdditionalProperties: &Node{Kind: KindPrimitive, Type: "string"},
			Description:          "Annotations.",
		},
		"extra":    {Kind: KindAny},
		"body":     {Kind: KindPrimitive, Type: "string", Format: "byte"},
		"author":   {Kind: KindReference, Ref: "User"},
		"reviewer": {Kind: KindReference, Ref: "moremodels.User"},
	}
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			actual, ok := root.Property(name)
			require.True(t, ok)
			assert.Equal(t, expected, actual)
		})
	}

	require.Len(t, result.Definitions, 2)
	assert.Equal(t, "User", result.Definitions[0].Name)
	assert.Equal(t, "moremodels.User", result.Definitions[1].Name)
	assert.Equal(t, "User is an external reviewer.", result.Definitions[1].Node.Description)
}

func TestReflector_Reflect_NamesAreStableAcrossCalls(t *testing.T) {
	reflector := NewReflector(nil)
	_, err := reflector.Reflect(reflect.TypeOf(testmodels.Item{}))
	require.NoError(t, err)

	type wrapper struct {
		Reviewer moremodels.User `json:"reviewer"`
		Owner    testmodels.User `json:"owner"`
	}
	result, err := reflector.Reflect(reflect.TypeOf(wrapper{}))
	require.NoError(t, err)
	reviewer, _ := result.Root.Property("reviewer")
	owner, _ := result.Root.Property("owner")
	assert.Equal(t, "moremodels.User", reviewer.Ref)
	assert.Equal(t, "User", owner.Ref)
}

func TestReflector_Reflect_QualifiedNameCollision(t *testing.T) {
	var first, second reflect.Type
	{
		type Item struct {
			ID string `json:"id"`
		}
		first = reflect.TypeOf(Item{})
	}
	{
		type Item struct {
			Name string `json:"name"`
		}
		second = reflect.TypeOf(Item{})
	}
	type wrapper struct {
		Documented testmodels.Item `json:"documented"`
	}

	reflector := NewReflector(nil)
	names := make([]string, 0, 3)
	for _, typ := range []reflect.Type{reflect.TypeOf(wrapper{}), first, second} {
		holder := reflect.StructOf([]reflect.StructField{{Name: "Value", Type: typ, Tag: `json:"value"`}})
		result, err := reflector.Reflect(holder)
		require.NoError(t, err)
		value, _ := result.Root.Property("value")
		names = append(names, value.Ref)
	}
	assert.Equal(t, []string{"wrapper", "schema.Item", "schema.Item_2"}, names)

	result, err := reflector.Reflect(reflect.TypeOf(wrapper{}))
	require.NoError(t, err)
	require.Len(t, result.Definitions, 2)
	assert.Equal(t, "Item", result.Definitions[0].Name)
	assert.Equal(t, "User", result.Definitions[1].Name)

	defs := make(Definitions)
	for _, typ := range []reflect.Type{first, second} {
		result, err := reflector.Reflect(reflect.StructOf([]reflect.StructField{{Name: "Value", Type: typ}}))
		require.NoError(t, err)
		defs.Merge(result.Definitions)
	}
	assert.Equal(t, []string{"schema.Item", "schema.Item_2"}, defs.Names())
}

func TestReflector_Reflect_EmbeddedStructs(t *testing.T) {
	type Base struct {
		ID string `json:"id"`
	}
	type tagged struct {
		Base `json:"base"`
		Name string `json:"name"`
	}
	type skipped struct {
		Base `json:"-"`
		Name string `json:"name"`
	}
	type flattened struct {
		*Base
		Name string `json:"name"`
	}

	reflector := NewReflector(nil)
	result, err := reflector.Reflect(reflect.TypeOf(tagged{}))
	require.NoError(t, err)
	require.Len(t, result.Root.Properties, 2)
	assert.Equal(t, "base", result.Root.Properties[0].Name)
	assert.Equal(t, KindReference, result.Root.Properties[0].Node.Kind)

	result, err = reflector.Reflect(reflect.TypeOf(skipped{}))
	require.NoError(t, err)
	assert.Equal(t, []Property{{Name: "name", Node: Node{Kind: KindPrimitive, Type: "string"}}}, result.Root.Properties)

	result, err = reflector.Reflect(reflect.TypeOf(flattened{}))
	require.NoError(t, err)
	assert.Equal(t, []Property{
		{Name: "id", Node: Node{Kind: KindPrimitive, Type: "string"}},
		{Name: "name", Node: Node{Kind: KindPrimitive, Type: "string"}},
	}, result.Root.Properties)
	assert.Empty(t, result.Definitions)
}

func TestReflector_Reflect_Primitives(t *testing.T) {
	tests := map[string]struct {
		value    any
		expected Node
	}{
		"int32":   {int32(0), Node{Kind: KindPrimitive, Type: "integer", Format: "int32"}},
		"uint8":   {uint8(0), Node{Kind: KindPrimitive, Type: "integer", Format: "uint8", Minimum: ptr(int64(0))}},
		"float32": {float32(0), Node{Kind: KindPrimitive, Type: "number", Format: "float"}},
		"string":  {"", Node{Kind: KindPrimitive, Type: "string"}},
		"pointer": {ptr(true), Node{Kind: KindPrimitive, Type: "boolean", Nullable: true}},
		"array":   {[2]string{}, Node{Kind: KindArray, Items: &Node{Kind: KindPrimitive, Type: "string"}}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := NewReflector(nil).Reflect(reflect.TypeOf(tc.value))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result.Root)
			assert.Empty(t, result.Definitions)
		})
	}
}

func TestReflector_Reflect_Errors(t *testing.T) {
	t.Run("unsupported field type", func(t *testing.T) {
		type withChan struct {
			C chan int `json:"c"`
		}
		_, err := NewReflector(nil).Reflect(reflect.TypeOf(withChan{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
	})
	t.Run("non-string map key", func(t *testing.T) {
		_, err := NewReflector(nil).Reflect(reflect.TypeOf(map[int]string{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
	})
	t.Run("nil type", func(t *testing.T) {
		_, err := NewReflector(nil).Reflect(nil)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
	})
	t.Run("doc provider failure", func(t *testing.T) {
		_, err := NewReflector(failingDocs{}).Reflect(reflect.TypeOf(testmodels.SearchQuery{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestReflector_Reflect_GoDoc(t *testing.T) {
	parser, err := godoc.NewParser("")
	require.NoError(t, err)

	result, err := NewReflector(parser).Reflect(reflect.TypeOf(testmodels.SearchQuery{}))
	require.NoError(t, err)
	assert.Equal(t, "SearchQuery is the query of the search endpoint.", result.Root.Description)
	q, _ := result.Root.Property("q")
	assert.Equal(t, "Q is the search pattern.", q.Description)
	archived, _ := result.Root.Property("archived")
	assert.Equal(t, "Archived makes the search include archived items.", archived.Description)
	assert.True(t, archived.Nullable)
}

func TestDefinitions(t *testing.T) {
	defs := make(Definitions)
	defs.Merge([]Definition{
		{Name: "b", Node: Node{Kind: KindAny}},
		{Name: "a", Node: Node{Kind: KindAny}},
	})
	defs.Merge([]Definition{{Name: "b", Node: Node{Kind: KindPrimitive, Type: "string"}}})
	assert.Equal(t, []string{"a", "b"}, defs.Names())
	assert.Equal(t, "string", defs["b"].Type)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "reference", KindReference.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
