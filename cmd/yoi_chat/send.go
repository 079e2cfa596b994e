package main

import (
	"errors"
	"fmt"
	"strings"

	"yoi_chat/pkg/chat"

	"github.com/spf13/cobra"
)

var errNoReply = errors.New("the chat endpoint did not answer")

func newSendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send one message and print the reply",
		Long: `Send one message through the same session as the interactive widget
and print the reply. Exits non-zero when the exchange fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := a.newClient(ctx, st)
			if err != nil {
				return err
			}

			if !client.SendMessage(ctx, strings.Join(args, " ")) {
				return errors.New("message is empty")
			}

			msgs := client.Messages()
			reply := msgs[len(msgs)-1]
			trusted := reply.Origin == chat.OriginLocal
			r := a.renderer()
			text := r.Format(reply.Text, trusted)
			if r.Marked(trusted) {
				text = strings.ReplaceAll(text, "**", "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if reply.Origin == chat.OriginLocal {
				return errNoReply
			}
			return nil
		},
	}
}
