// Command flowpad is the node-pipeline canvas editor: a Gio GUI for
// wiring setups together and an HTTP server for persisting them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "flowpad",
	Short: "flowpad — a pannable canvas for wiring node pipelines",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to flowpad.yaml")
}

// loadConfig resolves the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
