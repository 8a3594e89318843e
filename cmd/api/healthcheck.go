package main

import (
	"time"

	"pet-adoption-center/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

func newHealthcheckCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Consulta /health de una instancia en marcha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := httpclient.New(url, timeout)
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("status=%s storage=%s\n", h.Status, h.Storage)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "URL base de la API")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "timeout del request")
	return cmd
}
