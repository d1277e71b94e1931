package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nieomylnieja/oapidoc/pkg/oapidoc"
)

type viewerFlags struct {
	url    string
	output string
}

type viewer struct {
	name   string
	short  string
	render func(specURL string) string
	toFile func(specURL, path string) error
}

var viewers = []viewer{
	{
		name:   "swagger",
		short:  "Emit a Swagger UI page",
		render: oapidoc.SwaggerUIHTML,
		toFile: oapidoc.SwaggerUIHTMLToFile,
	},
	{
		name:   "redoc",
		short:  "Emit a ReDoc page",
		render: oapidoc.RedocUIHTML,
		toFile: oapidoc.RedocUIHTMLToFile,
	},
}

func newViewerCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Emit static HTML pages displaying an OpenAPI document",
	}
	for _, v := range viewers {
		cmd.AddCommand(newViewerSubCmd(root, v))
	}
	return cmd
}

func newViewerSubCmd(root *rootFlags, v viewer) *cobra.Command {
	flags := &viewerFlags{}
	cmd := &cobra.Command{
		Use:   v.name,
		Short: v.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), v.render(flags.url))
				return err
			}
			if err := v.toFile(flags.url, flags.output); err != nil {
				return err
			}
			root.logger(cmd).Info("emitted viewer", slog.String("viewer", v.name), slog.String("output", flags.output))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.url, "url", "/openapi3.yaml", "URL the OpenAPI document is served at")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, defaults to stdout")
	return cmd
}
