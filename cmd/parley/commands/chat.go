package commands

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/session"
	"parley/internal/store"
)

// pollInterval paces the driving loop. The core never blocks, so this is
// the only thing standing between it and a busy spin.
const pollInterval = 50 * time.Millisecond

// chatCmd runs the interactive loop: accept or dial a peer, exchange keys,
// then relay stdin lines as encrypted messages.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Listen for a peer and exchange encrypted messages",
		Long: `Chat binds the listen port and waits for a peer; give --peer (or type
/connect <addr>) to dial one instead. Whichever side establishes the
connection, the key exchange runs the same way. Lines you type are sent
encrypted; /leave ends the session, /quit exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := wiring.Log

			ep, err := session.Listen(fmt.Sprintf(":%d", cfg.ListenPort), wiring.Exchange, log)
			if err != nil {
				return err
			}
			defer ep.Close()
			log.WithField("addr", ep.Addr().String()).Info("listening for a peer")

			if cfg.Peer != "" {
				if err := ep.Connect(cfg.Peer); err != nil {
					log.WithError(err).Warn("connect failed")
				}
			}

			lines := make(chan string)
			go func() {
				defer close(lines)
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					lines <- sc.Text()
				}
			}()

			tick := time.NewTicker(pollInterval)
			defer tick.Stop()

			for {
				select {
				case line, ok := <-lines:
					if !ok || line == "/quit" {
						ep.Disconnect()
						return nil
					}
					handleLine(cmd, ep, line)

				case <-tick.C:
					ep.AcceptIfIdle()
					drainEvents(cmd, ep)
				}
			}
		},
	}
}

// handleLine interprets one line of input: a verb, or text for the peer.
func handleLine(cmd *cobra.Command, ep *session.Endpoint, line string) {
	log := wiring.Log
	switch {
	case line == "":

	case line == "/leave":
		ep.Disconnect()

	case strings.HasPrefix(line, "/connect "):
		addr := strings.TrimSpace(strings.TrimPrefix(line, "/connect "))
		if err := ep.Connect(addr); err != nil {
			log.WithError(err).Warn("connect failed")
		}

	case strings.HasPrefix(line, "/"):
		fmt.Fprintf(cmd.OutOrStdout(), "unknown command %q\n", line)

	default:
		if err := ep.Send(line); err != nil {
			log.WithError(err).Warn("send failed")
			return
		}
		if err := wiring.Transcript.Append(store.DirectionSent, line); err != nil {
			log.WithError(err).Warn("transcript write failed")
		}
	}
}

// drainEvents empties the endpoint's event queue into the terminal and
// the transcript.
func drainEvents(cmd *cobra.Command, ep *session.Endpoint) {
	log := wiring.Log
	for {
		ev, ok := ep.Poll()
		if !ok {
			return
		}
		switch ev.Kind {
		case session.HandshakeCompleted:
			log.Info("keys have been exchanged")

		case session.MessageReceived:
			fmt.Fprintf(cmd.OutOrStdout(), "[peer] %s\n", ev.Text)
			if err := wiring.Transcript.Append(store.DirectionReceived, ev.Text); err != nil {
				log.WithError(err).Warn("transcript write failed")
			}

		case session.PeerLeft:
			log.Info("the peer has disconnected")
		}
	}
}
