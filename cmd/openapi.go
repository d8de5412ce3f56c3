package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	httpapi "task-store.com/task-store/internal/http"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := httpapi.BuildOpenAPI(httpapi.Routes(httpapi.NewHandler(nil)))

		var (
			out []byte
			err error
		)
		switch openapiFormat {
		case "json":
			out, err = json.MarshalIndent(doc, "", "  ")
		case "yaml":
			out, err = yaml.Marshal(doc)
		default:
			return fmt.Errorf("unknown format %q, want json or yaml", openapiFormat)
		}
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(openapiCmd)
}
