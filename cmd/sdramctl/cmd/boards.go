package cmd

import (
	"fmt"

	"sdramctl-go/services/config"

	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List embedded board profiles",
	Args:  cobra.NoArgs,
	RunE:  runBoards,
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}

func runBoards(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range config.Names() {
		p, err := config.Load(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-20s %s\n", name, p.Description)
	}
	return nil
}
