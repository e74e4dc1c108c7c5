package main

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit [setup.json]",
	Short: "Open the canvas editor",
	Long:  "Opens the Gio editor on a setup file. A missing file starts an empty canvas saved on Ctrl+S.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := "setup.json"
		if len(args) == 1 {
			path = args[0]
		}

		cv, err := ui.LoadSetup(cfg, path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}

		go func() {
			window := new(app.Window)
			window.Option(
				app.Title("flowpad — "+path),
				app.Size(unit.Dp(1280), unit.Dp(840)),
			)

			application := ui.NewApp(cfg, cv, path)
			if err := application.Run(window); err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
