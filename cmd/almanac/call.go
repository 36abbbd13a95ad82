package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// callCmd executes a single tool against the in-process dispatcher. Handy
// for trying tools without standing up a server.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Execute a tool locally and print its result",
	Example: `  almanac call get_weather --arg city=Lisbon --arg country_code=PT
  almanac call read_file --arg file_path=./README.md`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pairs, _ := cmd.Flags().GetStringArray("arg")

		toolArgs := make(map[string]any, len(pairs))
		for _, pair := range pairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				fmt.Printf("Invalid --arg %q, expected key=value\n", pair)
				os.Exit(1)
			}
			toolArgs[key] = value
		}

		application, err := newApp(cmd)
		if err != nil {
			fmt.Printf("Error initializing almanac: %v\n", err)
			os.Exit(1)
		}
		defer application.Close()

		res := application.Dispatcher.Execute(context.Background(), args[0], toolArgs)
		fmt.Println(renderResult(res.Text))
		if res.Failed() {
			os.Exit(1)
		}
	},
}

// renderResult pretty-prints markdown results on a terminal and passes raw
// text through when piped.
func renderResult(text string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}

	style := glamour.WithStandardStyle("light")
	if termenv.HasDarkBackground() {
		style = glamour.WithStandardStyle("dark")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringArray("arg", nil, "Tool argument as key=value (repeatable)")
}
