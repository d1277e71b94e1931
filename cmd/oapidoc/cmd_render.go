package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oapidoc/pkg/oapidoc"
)

type renderFlags struct {
	template   string
	output     string
	files      []string
	values     []string
	valuesFile string
	strict     bool
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template with placeholders read from files and flags",
		Example: "  " + appName + " render --template openapi.tmpl.yaml \\\n" +
			"    --set SearchQuery=gen/search_query.yaml --value version=1.2.0 --output openapi3.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root.logger(cmd), flags)
		},
	}
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "template file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, defaults to stdout")
	cmd.Flags().StringArrayVar(&flags.files, "set", nil, "register a placeholder from a file, as name=path")
	cmd.Flags().StringArrayVar(&flags.values, "value", nil, "register a placeholder from a literal, as name=text")
	cmd.Flags().StringVar(&flags.valuesFile, "values", "", "YAML mapping of placeholder names to values")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "reject malformed and reserved placeholder names")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func runRender(cmd *cobra.Command, logger *slog.Logger, flags *renderFlags) error {
	template, err := os.ReadFile(flags.template)
	if err != nil {
		return errors.Wrap(err, "failed to read template")
	}
	opts := []oapidoc.Option{oapidoc.WithLogger(logger)}
	if flags.strict {
		opts = append(opts, oapidoc.WithStrictPlaceholderNames())
	}
	g := oapidoc.New(opts...)

	if flags.valuesFile != "" {
		if err = registerValuesFile(g, flags.valuesFile); err != nil {
			return err
		}
	}
	for _, assignment := range flags.files {
		name, path, err := parseAssignment(assignment)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s placeholder", name)
		}
		if err = g.Register(name, strings.TrimSpace(string(data))); err != nil {
			return err
		}
	}
	for _, assignment := range flags.values {
		name, text, err := parseAssignment(assignment)
		if err != nil {
			return err
		}
		if err = g.Register(name, text); err != nil {
			return err
		}
	}

	if flags.output != "" {
		if err = g.RenderToFile(string(template), flags.output); err != nil {
			return err
		}
		logger.Info("rendered template", slog.String("template", flags.template), slog.String("output", flags.output))
		return nil
	}
	out, err := g.Render(string(template))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// registerValuesFile registers every entry of a YAML mapping, in file order.
func registerValuesFile(g *oapidoc.Generator, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read values file")
	}
	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return errors.Errorf("%s must contain a YAML mapping", path)
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		var value any
		if err = mapping.Content[i+1].Decode(&value); err != nil {
			return errors.Wrapf(err, "failed to decode %s value", name)
		}
		if err = g.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func parseAssignment(assignment string) (name, value string, err error) {
	name, value, found := strings.Cut(assignment, "=")
	if !found || name == "" {
		return "", "", errors.Errorf("invalid assignment %q, expected name=value", assignment)
	}
	return name, value, nil
}
