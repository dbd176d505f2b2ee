package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "github.com/tliron/commonlog/simple"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "annotator",
		Short:         "Locate annotation insertion offsets in Java sources",
		Long:          `annotator resolves, for every request of an insertion plan, the byte offset before which the annotation text must be spliced`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.AddCommand(newLocateCmd())
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
