package godoc

import (
	"go/ast"
	"go/doc/comment"
	"go/types"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/nieomylnieja/oapidoc/internal/pathutils"
	"github.com/nieomylnieja/oapidoc/internal/typeinfo"
)

// typeDoc holds the doc comments of a single type declaration.
type typeDoc struct {
	Doc string
	// StructFields maps Go field names to their doc comments.
	StructFields map[string]string
}

// docIndex is keyed by the type itself, function-local types may share
// their name with a package-level declaration.
type docIndex map[reflect.Type]typeDoc

// NewParser loads all packages of the module enclosing dir, along with their dependencies.
// An empty dir means the current working directory.
func NewParser(dir string) (*Parser, error) {
	mod, err := pathutils.FindModule(dir)
	if err != nil {
		return nil, err
	}
	// Load complete type information for the specified packages,
	// along with type-annotated syntax.
	conf := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Dir:   mod.Root,
		Tests: false,
	}
	pkgs, err := packages.Load(conf, mod.Path+"/...")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s packages", mod.Path)
	}
	if err = checkForPackageErrors(pkgs); err != nil {
		return nil, err
	}

	parser := &Parser{
		pkgs:  make(map[string]*goPackage, len(pkgs)),
		cache: make(docIndex),
	}
	parser.collectAllPackages(pkgs)
	return parser, nil
}

// Parser extracts doc comments of Go types and their struct fields.
// It is not safe for concurrent use.
type Parser struct {
	pkgs  map[string]*goPackage
	cache docIndex
}

type goPackage struct {
	pkg           *packages.Package
	commentParser *comment.Parser
}

// TypeDoc returns the doc comment of the type declaration.
// Built-in and unnamed types have no documentation.
func (p *Parser) TypeDoc(goType reflect.Type) (string, error) {
	doc, err := p.lookup(goType)
	if err != nil {
		return "", err
	}
	return doc.Doc, nil
}

// FieldDoc returns the doc comment of the struct field declared on the given type.
func (p *Parser) FieldDoc(goType reflect.Type, field string) (string, error) {
	doc, err := p.lookup(goType)
	if err != nil {
		return "", err
	}
	return doc.StructFields[field], nil
}

func (p *Parser) lookup(goType reflect.Type) (typeDoc, error) {
	goType = underlyingElem(goType)
	if doc, found := p.cache[goType]; found {
		return doc, nil
	}
	if err := p.parse(goType, p.cache); err != nil {
		return typeDoc{}, err
	}
	return p.cache[goType], nil
}

func (p *Parser) parse(goType reflect.Type, docs docIndex) error {
	goType = underlyingElem(goType)
	info := typeinfo.Get(goType)
	if info.Package == "" {
		// Builtin or unnamed type, no need to parse.
		return nil
	}
	if _, found := docs[goType]; found {
		return nil
	}

	// Find the package and package-level object.
	pkg := p.getPackageByPath(info.Package)
	if pkg == nil {
		return errors.Errorf("could not find %s package for type %s", info.Package, info.Name)
	}
	if pkg.commentParser == nil {
		pkg.commentParser = p.newCommentParserForPackage(pkg.pkg)
	}

	obj := pkg.pkg.Types.Scope().Lookup(info.DeclName())
	if !declares(obj, goType) {
		// Function-local types are not part of the package scope and carry no documentation.
		docs[goType] = typeDoc{}
		return nil
	}
	spec, docText, err := p.findTypeSpec(pkg, obj)
	if err != nil {
		return errors.Wrapf(err, "failed to find %s declaration in %s pkg", info.Name, info.Package)
	}
	doc := typeDoc{
		Doc: p.docCommentToMarkdown(pkg.commentParser, pkg.pkg.PkgPath, docText),
	}
	// Registered before visiting the fields, recursive types would loop otherwise.
	docs[goType] = doc

	// Defined types like "type A B" keep their field docs on B.
	structType, ok := spec.Type.(*ast.StructType)
	if goType.Kind() != reflect.Struct || !ok {
		return nil
	}
	doc.StructFields = make(map[string]string, goType.NumField())
	fieldIndex := 0
	for _, astField := range structType.Fields.List {
		fieldDoc := p.docCommentToMarkdown(pkg.commentParser, pkg.pkg.PkgPath, astField.Doc.Text())
		// Embedded fields have no names but still occupy a single index.
		n := max(len(astField.Names), 1)
		for range n {
			if fieldIndex >= goType.NumField() {
				break
			}
			goTypeField := goType.Field(fieldIndex)
			fieldIndex++
			if !goTypeField.IsExported() {
				continue
			}
			doc.StructFields[goTypeField.Name] = fieldDoc
			if err = p.parse(goTypeField.Type, docs); err != nil {
				delete(docs, goType)
				return errors.Wrapf(err, "failed to parse %s struct field %s", info.Name, goTypeField.Name)
			}
		}
	}
	docs[goType] = doc
	return nil
}

// declares reports whether the package-level object is the declaration of goType.
// Only field names and tags can be compared, reflection does not expose declaration positions.
func declares(obj types.Object, goType reflect.Type) bool {
	if _, ok := obj.(*types.TypeName); !ok {
		return false
	}
	structType, isStruct := obj.Type().Underlying().(*types.Struct)
	if goType.Kind() != reflect.Struct {
		return !isStruct
	}
	if !isStruct || structType.NumFields() != goType.NumField() {
		return false
	}
	for i := range structType.NumFields() {
		field := goType.Field(i)
		if structType.Field(i).Name() != field.Name || structType.Tag(i) != string(field.Tag) {
			return false
		}
	}
	return true
}

// findTypeSpec finds the ast.TypeSpec declaring the package-level object.
// It also returns the doc comment text, which for grouped declarations is attached to the spec.
func (p *Parser) findTypeSpec(pkg *goPackage, obj types.Object) (*ast.TypeSpec, string, error) {
	pos := obj.Pos()
	for _, file := range pkg.pkg.Syntax {
		if file.FileStart > pos || pos >= file.FileEnd {
			continue // not in this file
		}
		path, _ := astutil.PathEnclosingInterval(file, pos, pos)
		var spec *ast.TypeSpec
		for _, n := range path {
			switch n := n.(type) {
			case *ast.TypeSpec:
				spec = n
			case *ast.GenDecl:
				if spec == nil {
					continue
				}
				if spec.Doc != nil {
					return spec, spec.Doc.Text(), nil
				}
				return spec, n.Doc.Text(), nil
			}
		}
	}
	return nil, "", errors.Errorf("could not find %s.%s declaration", pkg.pkg.Name, obj.Name())
}

const docLinkBaseURL = "https://pkg.go.dev"

func (p *Parser) docCommentToMarkdown(parser *comment.Parser, pkg, text string) string {
	if text == "" {
		return ""
	}
	parsed := parser.Parse(text)
	printer := comment.Printer{
		DocLinkURL: func(link *comment.DocLink) string {
			if link.ImportPath == "" {
				link.ImportPath = pkg
			}
			return link.DefaultURL(docLinkBaseURL)
		},
	}
	return strings.TrimSpace(string(printer.Markdown(parsed)))
}

func (p *Parser) newCommentParserForPackage(currentPackage *packages.Package) *comment.Parser {
	return &comment.Parser{
		LookupPackage: func(name string) (importPath string, ok bool) {
			for _, pkg := range p.pkgs {
				if pkg.pkg.Name == name {
					return pkg.pkg.PkgPath, true
				}
			}
			return "", false
		},
		LookupSym: func(recv, name string) (ok bool) {
			if recv == "" {
				return currentPackage.Types.Scope().Lookup(name) != nil
			}
			obj := currentPackage.Types.Scope().Lookup(recv)
			if obj == nil {
				return false
			}
			switch u := obj.Type().Underlying().(type) {
			case *types.Struct:
				for field := range u.Fields() {
					if field.Name() == name {
						return true
					}
				}
				return false
			default:
				return false
			}
		},
	}
}

func (p *Parser) getPackageByPath(pkgPath string) *goPackage {
	return p.pkgs[pkgPath]
}

// collectAllPackages recursively adds all packages and their imports to the parser's map.
func (p *Parser) collectAllPackages(pkgs []*packages.Package) {
	for _, pkg := range pkgs {
		if _, exists := p.pkgs[pkg.PkgPath]; exists {
			continue
		}
		p.pkgs[pkg.PkgPath] = &goPackage{pkg: pkg}
		if len(pkg.Imports) > 0 {
			p.collectAllPackages(slices.Collect(maps.Values(pkg.Imports)))
		}
	}
}

func checkForPackageErrors(pkgs []*packages.Package) (err error) {
	packages.Visit(pkgs, func(pkg *packages.Package) bool {
		for _, err = range pkg.Errors {
			err = errors.Wrapf(err, "package %s has reported an error", pkg.PkgPath)
			return false
		}
		mod := pkg.Module
		if mod != nil && mod.Error != nil {
			err = errors.New(mod.Error.Err)
			return false
		}
		return true
	}, nil)
	return err
}

// underlyingElem strips pointers and container types down to the element type.
func underlyingElem(goType reflect.Type) reflect.Type {
	for {
		switch goType.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			if goType.Name() != "" && goType.PkgPath() != "" {
				return goType
			}
			goType = goType.Elem()
		default:
			return goType
		}
	}
}
