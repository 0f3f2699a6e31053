package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dbtool",
		Short: "Maintenance commands for the medikita platform",
		Long: `dbtool bundles the out-of-band maintenance operations that are not
part of the HTTP API: database hardening, schema repair, storage bucket
provisioning and admin role management.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		rlsCmd(),
		fkRepairCmd(),
		bucketsCmd(),
		grantAdminCmd(),
		revokeAdminCmd(),
		auditCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
