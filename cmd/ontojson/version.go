package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ontojson/ontojson/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ontojson version:", version.Version)
			fmt.Println("git hash:", version.GitHash)
			if version.BuildDate != "" {
				fmt.Println("build date:", version.BuildDate)
			}
			fmt.Println("go version:", runtime.Version())
		},
	}
}
