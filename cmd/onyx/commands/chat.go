package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"onyx/internal/domain"
	"onyx/internal/peers"
	"onyx/internal/relay"
	"onyx/internal/session"
)

// chat: generate a one-session identity, connect, announce, and chat until
// EOF or /quit.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Connect to the relay and chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host := newTerminalHost(os.Stdout)

			id, err := session.NewIdentity()
			if err != nil {
				return fmt.Errorf("identity: %w", err)
			}
			host.OnSystemNotice(fmt.Sprintf("Generated identity %s", domain.ShortID(id.ID)))

			client, err := relay.Dial(wire.Cfg.Relay.Address, wire.LogBackend.GetLogger("relay"))
			if err != nil {
				return err
			}
			host.OnSystemNotice("Connected to relay " + wire.Cfg.Relay.Address)

			sess := session.New(id, peers.NewDirectory(), client, host, wire.LogBackend.GetLogger("session"))
			sess.Start()
			go client.ReadLoop(sess)
			sess.ConnectionUp()

			sc := bufio.NewScanner(os.Stdin)
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				switch line {
				case "":
					continue
				case "/quit", "/exit":
					sess.Halt()
					return nil
				default:
					sess.Submit(line)
				}
			}
			sess.Halt()
			return sc.Err()
		},
	}
}
