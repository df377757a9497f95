package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ontojson/ontojson/clog"
	"github.com/ontojson/ontojson/inference"
	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/parser"
	"github.com/ontojson/ontojson/transform"
)

const (
	flagFormat      = "format"
	flagConfig      = "config"
	flagOut         = "out"
	flagLanguage    = "language"
	flagIndent      = "indent"
	flagYAML        = "yaml"
	flagMaterialize = "materialize"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <file>",
		Aliases: []string{"conv"},
		Short:   "Convert an OWL ontology document to a JSON Schema. Reads from stdin if no file is provided.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := "-"
			if len(args) == 1 {
				in = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			formatName, _ := cmd.Flags().GetString(flagFormat)
			quads, err := parser.ReadFile(in, formatName)
			if err != nil {
				return err
			}
			if materialize, _ := cmd.Flags().GetBool(flagMaterialize); materialize {
				n := len(quads)
				quads = inference.Materialize(quads)
				if clog.V(1) {
					clog.Infof("materialized %d entailed statements", len(quads)-n)
				}
			}
			model := parser.Parse(quads)

			doc, warnings := transform.Transform(model, cfg)
			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, "warning:", w)
			}

			data, err := jsonschema.Encode(doc, jsonschema.Format(cfg.Format), cfg.Indent)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString(flagOut)
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(out, data, 0644)
		},
	}
	cmd.Flags().StringP(flagOut, "o", "-", `output file ("-" for stdout)`)
	cmd.Flags().String(flagFormat, "", `input format (e.g. "nquads", "jsonld"; auto-detected by extension when empty)`)
	cmd.Flags().StringP(flagConfig, "c", "", "transformation configuration file (JSON or YAML)")
	cmd.Flags().String(flagLanguage, "", `language tag for labels and comments (default from config, "en")`)
	cmd.Flags().Int(flagIndent, -1, "output indentation width (default from config, 2)")
	cmd.Flags().Bool(flagYAML, false, "render the schema as YAML instead of JSON")
	cmd.Flags().Bool(flagMaterialize, false, "materialize entailed subclass, subproperty and typing statements before parsing")
	return cmd
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*transform.Config, error) {
	cfg := transform.DefaultConfig()
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		var err error
		if cfg, err = transform.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if lang, _ := cmd.Flags().GetString(flagLanguage); lang != "" {
		cfg.Language = lang
	}
	if indent, _ := cmd.Flags().GetInt(flagIndent); indent >= 0 {
		cfg.Indent = indent
	}
	if yml, _ := cmd.Flags().GetBool(flagYAML); yml {
		cfg.Format = string(jsonschema.FormatYAML)
	}
	switch jsonschema.Format(cfg.Format) {
	case jsonschema.FormatJSON, jsonschema.FormatYAML, "":
	default:
		return nil, errors.New("output format must be json or yaml")
	}
	return cfg, nil
}
