package commands

import (
	"github.com/spf13/cobra"

	"onyx/internal/app"
)

var (
	configPath string
	relayAddr  string
	wire       *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "onyx",
		Short: "End-to-end encrypted group chat over an untrusted relay",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.NewWire(configPath)
			if err != nil {
				return err
			}
			if relayAddr != "" {
				w.Cfg.Relay.Address = relayAddr
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "f", "", "configuration file (TOML)")
	root.PersistentFlags().StringVar(&relayAddr, "relay", "", "relay address (overrides config)")

	root.AddCommand(chatCmd())
	return root.Execute()
}
