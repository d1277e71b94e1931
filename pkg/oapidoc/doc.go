// Package oapidoc generates OpenAPI 3 documents from Go types and a YAML template.
//
// Schemas and query parameters are generated from Go types and rendered as YAML.
// The results are registered as named placeholders, which are then substituted
// in a hand-written template containing {{name}} tokens.
// The indentation of each token is preserved, so multi-line fragments
// can be placed at any nesting level of the template.
//
// # Basic Usage
//
// Given the types of an endpoint:
//
//	// SearchQuery is the query of the search endpoint.
//	type SearchQuery struct {
//	    // Q is the search pattern.
//	    Q        string `json:"q"`
//	    Archived *bool  `json:"archived"`
//	}
//
//	type SearchResponse struct {
//	    Count int    `json:"count"`
//	    Items []Item `json:"items"`
//	}
//
// And a template:
//
//	paths:
//	  /search:
//	    get:
//	      parameters:
//	        {{SearchQuery}}
//	      responses:
//	        "200":
//	          description: Search result
//	          content:
//	            application/json:
//	              schema:
//	                {{SearchResponse}}
//	components:
//	  schemas:
//	    {{oapidoc::definitions}}
//
// Render the document:
//
//	g := oapidoc.New(oapidoc.WithGoDocComments(""))
//	if err := oapidoc.RegisterQueryParams[SearchQuery](g, "SearchQuery"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := oapidoc.RegisterSchema[SearchResponse](g, "SearchResponse"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.RenderToFile(template, "openapi3.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Schemas
//
// Struct fields are named after their json tags.
// Pointers are optional: they are rendered with "nullable: true"
// and left out of the object's "required" list.
// Every named struct other than the registered type itself is rendered once,
// as a definition under [DefinitionsPlaceholder], and referenced with "$ref".
//
// Descriptions come from the "description" struct tag or, with [WithGoDocComments],
// from the godoc comments of types and fields.
//
// # Query Parameters
//
// [RegisterQueryParams] renders one "in: query" parameter per struct field.
// A parameter is required unless its field is a pointer.
// Field descriptions are placed on the parameter instead of its schema.
// Descriptions nested deeper in the schema, like the fields of an inline struct,
// are kept unless [WithLegacyDescriptionFilter] is set, in which case every
// "description:" line is removed from the parameter schemas.
//
// # Viewers
//
// [SwaggerUIHTML] and [RedocUIHTML] return static pages displaying the document
// served at a given URL.
package oapidoc
