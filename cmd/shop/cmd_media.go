package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/database"
	"github.com/xcursi322/prakt/pkg/storage"
)

// shop product:image <id> <file>
var productImageCmd = &cobra.Command{
	Use:   "product:image <product-id> <file>",
	Short: "Upload a product image to the media disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cast.ToUintE(args[0])
		if err != nil || id == 0 {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()
		if err := storage.Connect(cmd.Context()); err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		stored, err := services.AttachImage(cmd.Context(), id, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Stored %s on %s disk: %s\n", stored, storage.Current().Name(), storage.URL(stored))
		return nil
	},
}
