package typeinfo

import (
	"path"
	"reflect"
	"regexp"
	"strings"
)

// TypeInfo stores the Go type information.
type TypeInfo struct {
	Name    string
	Package string
}

// Get returns the information for the [reflect.Type].
// All pointer indirections are stripped.
// Package field is empty for built-in and unnamed types,
// in which case Name holds the full type string, e.g. "[]string".
func Get(typ reflect.Type) TypeInfo {
	if typ == nil {
		return TypeInfo{}
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.PkgPath() == "" || typ.Name() == "" {
		return TypeInfo{Name: typ.String()}
	}
	return TypeInfo{
		Name:    typ.Name(),
		Package: typ.PkgPath(),
	}
}

// Key uniquely identifies the type within a program.
func (t TypeInfo) Key() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// DeclName is the name under which the type is declared in its package.
// For instantiated generic types the type arguments are dropped:
//
//	Page[github.com/foo/bar.User] -> Page
func (t TypeInfo) DeclName() string {
	name, _, _ := strings.Cut(t.Name, "[")
	return name
}

var invalidDefinitionChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DefinitionName returns the name suitable for an OpenAPI component key.
// Generic type arguments are reduced to their base names:
//
//	Page[github.com/foo/bar.User] -> Page_User
func (t TypeInfo) DefinitionName() string {
	decl, args, found := strings.Cut(t.Name, "[")
	if !found {
		return t.Name
	}
	args = strings.TrimSuffix(args, "]")
	parts := []string{decl}
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if i := strings.LastIndex(arg, "/"); i >= 0 {
			arg = arg[i+1:]
		}
		if i := strings.LastIndex(arg, "."); i >= 0 {
			arg = arg[i+1:]
		}
		parts = append(parts, arg)
	}
	return strings.Trim(invalidDefinitionChars.ReplaceAllString(strings.Join(parts, "_"), "_"), "_")
}

// QualifiedDefinitionName prefixes [TypeInfo.DefinitionName] with the package base name.
// It is used to disambiguate types sharing a name across packages.
func (t TypeInfo) QualifiedDefinitionName() string {
	if t.Package == "" {
		return t.DefinitionName()
	}
	return path.Base(t.Package) + "." + t.DefinitionName()
}
