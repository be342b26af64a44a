package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every image in the original-image container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		names, err := a.store.List(ctx, a.cfg.OriginalContainer)
		if err != nil {
			return fmt.Errorf("list %s: %w", a.cfg.OriginalContainer, err)
		}
		if len(names) == 0 {
			log.Infof("No images found in %s", a.cfg.OriginalContainer)
			return nil
		}

		bar := progressbar.Default(int64(len(names)), "processing")
		failed := 0
		for _, name := range names {
			if _, err := a.orch.Process(ctx, name); err != nil {
				log.Errorf("Failed to process %s: %v", name, err)
				failed++
			}
			bar.Add(1)
		}

		log.Infof("Processed %d images, %d failed", len(names), failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d images failed", failed, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
