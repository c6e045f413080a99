package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/database/seeders"
	"github.com/xcursi322/prakt/pkg/cache"
	"github.com/xcursi322/prakt/pkg/database"
	"github.com/xcursi322/prakt/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// shop migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		fmt.Println("Running migrations…")
		n, err := migration.New(database.DB, os.Stdout).Run()
		if err != nil {
			return err
		}
		fmt.Printf("%d migration(s) ran.\n", n)
		return nil
	},
}

// shop migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		fmt.Println("Rolling back last batch…")
		n, err := migration.New(database.DB, os.Stdout).Rollback()
		if err != nil {
			return err
		}
		fmt.Printf("%d migration(s) rolled back.\n", n)
		return nil
	},
}

// shop migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		rows, err := migration.New(database.DB, os.Stdout).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
		for _, row := range rows {
			ran, batch := "No", "-"
			if row.Ran {
				ran, batch = "Yes", fmt.Sprint(row.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, row.Name)
		}
		return w.Flush()
	},
}

// shop seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the starter catalogue and admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		fmt.Println("Running seeders…")
		if err := seeders.RunAll(database.DB, os.Stdout); err != nil {
			return err
		}

		// Categories are cached by the running server.
		if err := cache.Connect(); err == nil {
			_ = services.NewCatalogService().ForgetCategories()
		}
		return nil
	},
}
