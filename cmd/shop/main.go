// Command shop runs the storefront and its maintenance tasks:
//
//	shop serve              # start the HTTP server
//	shop route:list         # print the route table
//	shop migrate            # run pending migrations
//	shop migrate:rollback   # undo the last batch
//	shop migrate:status
//	shop seed               # starter catalogue and admin account
//	shop product:image 3 whey.jpg
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the schema migrations.
	_ "github.com/xcursi322/prakt/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shop",
	Short:         "Sport nutrition storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(productImageCmd)
}
