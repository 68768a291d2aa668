package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"parley/internal/app"
)

var (
	home       string
	listenPort int
	peerAddr   string
	logLevel   string

	cfg    app.Config
	wiring *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "parley",
		Short: "Direct two-party encrypted chat",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".parley")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			c, err := app.Load(home)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				c.ListenPort = listenPort
			}
			if cmd.Flags().Changed("peer") {
				c.Peer = peerAddr
			}
			if cmd.Flags().Changed("log-level") {
				c.LogLevel = logLevel
			}
			cfg = c

			wiring, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.parley)")
	root.PersistentFlags().IntVar(&listenPort, "port", 4444, "port to listen on for a peer")
	root.PersistentFlags().StringVar(&peerAddr, "peer", "", "peer address to dial on startup")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(chatCmd(), historyCmd())
	return root.Execute()
}
