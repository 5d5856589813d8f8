package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/config"
	"github.com/shashiranjanraj/bizapi/database/seeders"
	"github.com/shashiranjanraj/bizapi/pkg/database"
	"github.com/shashiranjanraj/bizapi/pkg/logger"
)

// bootDB loads config, opens the database and creates missing tables.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	db, err := database.Connect()
	if err != nil {
		return nil, err
	}
	if err := database.Bootstrap(db, models.All()...); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	logger.Info("database ready", "driver", config.DatabaseDriver())
	return db, nil
}

// bizapi seed
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample roles and invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := bootDB()
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(db, cmd.OutOrStdout())
		},
	}
}
