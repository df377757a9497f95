package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ontojson/ontojson/clog"

	// Register the glog backend for the logging facade.
	_ "github.com/ontojson/ontojson/clog/glog"
)

func main() {
	root := &cobra.Command{
		Use:   "ontojson",
		Short: "ontojson converts OWL ontologies to JSON Schema",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity, _ := cmd.Flags().GetInt("verbosity")
			clog.SetV(verbosity)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().Int("verbosity", 0, "log level for V logs")

	root.AddCommand(
		newConvertCmd(),
		newRulesCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
