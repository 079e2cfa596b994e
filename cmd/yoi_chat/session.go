package main

import (
	"fmt"

	"yoi_chat/pkg/store"

	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the stored chat session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored session id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id, ok, err := st.Get(cmd.Context(), store.SessionIDKey)
			if err != nil {
				return fmt.Errorf("read session: %w", err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no session")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the stored session id; the next message starts a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), store.SessionIDKey); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			a.logger.Info("session cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	})

	return cmd
}
