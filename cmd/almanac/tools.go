package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools and their parameters",
	Run: func(cmd *cobra.Command, args []string) {
		application, err := newApp(cmd)
		if err != nil {
			fmt.Printf("Error initializing almanac: %v\n", err)
			os.Exit(1)
		}
		defer application.Close()

		for _, t := range application.Dispatcher.List() {
			fmt.Printf("%s\n  %s\n", t.Name, t.Description)
			for _, p := range t.Params {
				req := "optional"
				if p.Required {
					req = "required"
				}
				fmt.Printf("  - %s (%s): %s\n", p.Name, req, p.Description)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
