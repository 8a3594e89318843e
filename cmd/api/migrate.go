package main

import (
	"fmt"

	"pet-adoption-center/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Aplica o revierte las migraciones del backend SQL configurado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StorageDriver == config.DriverMemory {
				return fmt.Errorf("STORAGE_DRIVER=memory has no migrations")
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			switch args[0] {
			case "up":
				err = migrateUp(cfg, db)
			case "down":
				err = migrateDown(cfg, db)
			default:
				return fmt.Errorf("unknown direction %q (up, down)", args[0])
			}
			if err != nil {
				return err
			}
			cmd.Printf("migrations %s applied (%s)\n", args[0], cfg.StorageDriver)
			return nil
		},
	}
	return cmd
}
