package main

import (
	"fmt"

	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the prebuilt voices",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, v := range speech.Voices {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
	},
}
