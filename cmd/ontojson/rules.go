package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ontojson/ontojson/transform"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the known transformation rules and their enabled state.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := transform.DefaultConfig()
			if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
				var err error
				if cfg, err = transform.LoadConfig(path); err != nil {
					return err
				}
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, id := range transform.KnownRules() {
				state := "disabled"
				if cfg.Enabled(id) {
					state = "enabled"
				}
				fmt.Fprintf(w, "%s\t%s\n", id, state)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringP(flagConfig, "c", "", "transformation configuration file (JSON or YAML)")
	return cmd
}
