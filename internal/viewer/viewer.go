// Package viewer provides static HTML pages displaying an OpenAPI document.
package viewer

import (
	_ "embed"
	"strings"
)

// URLToken is replaced with the URL of the OpenAPI document.
const URLToken = "{{openapi_yaml_url}}"

var (
	//go:embed templates/swagger-ui.html
	swaggerUITemplate string
	//go:embed templates/redoc-ui.html
	redocUITemplate string
)

// SwaggerUI returns the Swagger UI page loading the document from specURL.
func SwaggerUI(specURL string) string {
	return strings.ReplaceAll(swaggerUITemplate, URLToken, specURL)
}

// Redoc returns the ReDoc page loading the document from specURL.
func Redoc(specURL string) string {
	return strings.ReplaceAll(redocUITemplate, URLToken, specURL)
}
