package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Pet Adoption Center API
// @version 1.0
// @description Refugios, mascotas, adoptantes, solicitudes y el workflow de adopción.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pet-adoption-center",
		Short: "API del centro de adopción de mascotas",
		Long: `pet-adoption-center expone la API HTTP del centro de adopción.

La configuración se toma del entorno:
  PORT             puerto HTTP (default 8080)
  STORAGE_DRIVER   memory | postgres | sqlite (default memory)
  DB_DSN           DSN de Postgres (requerido con postgres)
  SQLITE_PATH      archivo SQLite (default pet-adoption.db)
  AUTO_MIGRATE     aplica migraciones al arrancar (default true)
  LOG_LEVEL        debug | info | warn | error
  LOG_FORMAT       text | json`,
		// sin subcomando = serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.SilenceUsage = true
	root.AddCommand(newServeCmd(), newMigrateCmd(), newHealthcheckCmd())
	return root
}
