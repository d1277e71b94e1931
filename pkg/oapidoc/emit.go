package oapidoc

import (
	"os"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/oapidoc/internal/viewer"
)

const outputFileMode = 0o644

// RenderToFile renders the template and writes the result to path.
func (g *Generator) RenderToFile(template, path string) error {
	out, err := g.Render(template)
	if err != nil {
		return err
	}
	return writeFile(path, out)
}

// SwaggerUIHTML returns a Swagger UI page displaying the OpenAPI document served at specURL.
func SwaggerUIHTML(specURL string) string {
	return viewer.SwaggerUI(specURL)
}

// RedocUIHTML returns a ReDoc page displaying the OpenAPI document served at specURL.
func RedocUIHTML(specURL string) string {
	return viewer.Redoc(specURL)
}

// SwaggerUIHTMLToFile writes the [SwaggerUIHTML] page to path.
func SwaggerUIHTMLToFile(specURL, path string) error {
	return writeFile(path, SwaggerUIHTML(specURL))
}

// RedocUIHTMLToFile writes the [RedocUIHTML] page to path.
func RedocUIHTMLToFile(specURL, path string) error {
	return writeFile(path, RedocUIHTML(specURL))
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), outputFileMode); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
