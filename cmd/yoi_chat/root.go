package main

import (
	"yoi_chat/pkg/config"
	"yoi_chat/pkg/ui"
	"yoi_chat/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "yoi_chat",
		Short: "Chat with the YOI assistant from your terminal",
		Long: `yoi_chat opens the YOI chat widget in the terminal.

Configuration is read from ~/.yoi_chat/config.json, then a .env file,
then YOI_* environment variables. The session id assigned by the chat
endpoint is kept in the configured session store and reused on the next run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, a)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.GetConfigPath(), "config file path")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file applied before YOI_* variables")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newSendCmd(a),
		newSessionCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func runInteractive(cmd *cobra.Command, a *app) error {
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

	theme, err := styles.NewTheme(a.cfg.Widget.BrandColor)
	if err != nil {
		a.logger.Warn("invalid brand color, using default", "brand_color", a.cfg.Widget.BrandColor, "error", err)
	}

	model := ui.NewModel(ctx, client, ui.Options{
		Theme:    theme,
		Renderer: a.renderer(),
		Position: a.cfg.Widget.Position,
		Logger:   a.logger,
	})

	a.logger.Info("starting chat ui", "api_url", a.cfg.Widget.APIURL)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	return nil
}
