// Command inferd is a thin shell over the inference engine: consult a
// knowledge base from text, saturate it, ask queries interactively or
// one-shot, and pretty-print parses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "inferd",
		Short:         "Symbolic inference over a fact base",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log trace events to stderr")

	root.AddCommand(
		newReplCommand(),
		newConsultCommand(),
		newAskCommand(),
		newParseCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
