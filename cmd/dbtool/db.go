package main

import (
	"github.com/spf13/cobra"

	"github.com/medikita/platform/internal/maintenance"
)

func rlsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rls",
		Short: "Enable row level security and install table policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newToolRuntime(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.close()

			return maintenance.EnableRowLevelSecurity(cmd.Context(), rt.pg.PoolHandle(), rt.logger)
		},
	}
}

func fkRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fk-repair",
		Short: "Recreate foreign key constraints to their canonical definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newToolRuntime(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.close()

			return maintenance.RepairForeignKeys(cmd.Context(), rt.pg.PoolHandle(), rt.logger)
		},
	}
}

func bucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "Provision the object storage buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newToolRuntime(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.close()

			client, err := maintenance.NewStorageClient(rt.cfg.Storage)
			if err != nil {
				return err
			}
			return maintenance.ProvisionBuckets(cmd.Context(), client, rt.logger)
		},
	}
}
