package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <filename>",
	Short: "Process a single image from the original-image container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		rep, err := a.orch.Process(ctx, args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
