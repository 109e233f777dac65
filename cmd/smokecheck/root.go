package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const urlEnv = "DEPLOYED_HEALTH_URL"

var errNoURL = errors.New(urlEnv + " is not set")

func newRootCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:           "smokecheck",
		Short:         "Check the health endpoint of a deployed comments API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = os.Getenv(urlEnv)
			}
			if url == "" {
				return errNoURL
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := check(ctx, http.DefaultClient, url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK: deployed health check passed")
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "health URL to check (default $"+urlEnv+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	return cmd
}
