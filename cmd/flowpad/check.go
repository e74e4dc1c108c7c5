package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/internal/setup"
)

var (
	okMark  = color.New(color.FgGreen).SprintFunc()
	badMark = color.New(color.FgRed).SprintFunc()
	dimNote = color.New(color.Faint).SprintFunc()
)

var checkCmd = &cobra.Command{
	Use:   "check <setup.json>",
	Short: "Validate and repair a setup file",
	Long:  "Loads a setup file, prunes dangling connections, clamps undersized nodes, and optionally writes the repaired file back.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		write, _ := cmd.Flags().GetBool("write")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := setup.Decode(data)
		if err != nil {
			fmt.Printf("%s %s: %v\n", badMark("✗"), args[0], err)
			os.Exit(1)
		}

		dropped := doc.Sanitize(cfg.Rules())
		fmt.Printf("%s %s: %d nodes, %d connections %s\n",
			okMark("✓"), args[0], len(doc.Nodes), len(doc.Connections),
			dimNote(fmt.Sprintf("(%d entries repaired)", dropped)))

		if write && dropped > 0 {
			out, err := doc.Encode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], out, 0o644); err != nil {
				return err
			}
			fmt.Printf("%s wrote repaired setup\n", okMark("✓"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("write", false, "write the repaired setup back to the file")
}
