package main

import (
	"fmt"

	"github.com/aretw0/vigor"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vigor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vigor version %s\n", vigor.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
