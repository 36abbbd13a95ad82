package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vporto/almanac"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of almanac",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("almanac version %s\n", almanac.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
