package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/store"
)

// historyCmd prints the stored transcript, oldest first.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the stored chat transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := wiring.Transcript.Load()
			if err != nil {
				return err
			}
			for _, e := range entries {
				label := "peer"
				if e.Direction == store.DirectionSent {
					label = "you"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s\n",
					e.At.Local().Format("2006-01-02 15:04:05"), label, e.Text)
			}
			return nil
		},
	}
}
