package main

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/medikita/platform/internal/identity"
	"github.com/medikita/platform/internal/maintenance"
	"github.com/medikita/platform/internal/repository"
)

func grantAdminCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "grant-admin <email>",
		Short: "Grant the admin role to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			granter, rt, err := newRoleGranter(cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			return granter.GrantAdmin(cmd.Context(), resolveActor(actor), args[0])
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Operator recorded in the audit trail (defaults to the OS user)")
	return cmd
}

func revokeAdminCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "revoke-admin <email>",
		Short: "Revoke the admin role from an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			granter, rt, err := newRoleGranter(cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			return granter.RevokeAdmin(cmd.Context(), resolveActor(actor), args[0])
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Operator recorded in the audit trail (defaults to the OS user)")
	return cmd
}

func auditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent admin role changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newToolRuntime(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.close()

			entries, err := repository.NewRoleAuditRepository(rt.pg.PoolHandle()).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %-6s  %-30s  by %s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.TargetEmail, e.Actor)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to print")
	return cmd
}

func newRoleGranter(cmd *cobra.Command) (*maintenance.RoleGranter, *toolRuntime, error) {
	rt, err := newToolRuntime(cmd.Context(), true)
	if err != nil {
		return nil, nil, err
	}

	idp, err := identity.NewClient(rt.cfg.Identity)
	if err != nil {
		rt.close()
		return nil, nil, fmt.Errorf("identity client: %w", err)
	}
	if rt.cfg.Identity.ServiceRoleKey == "" {
		rt.close()
		return nil, nil, fmt.Errorf("IDENTITY_SERVICE_ROLE_KEY is required for role commands")
	}

	audit := repository.NewRoleAuditRepository(rt.pg.PoolHandle())
	return maintenance.NewRoleGranter(idp, audit, rt.logger), rt, nil
}

func resolveActor(actor string) string {
	if actor != "" {
		return actor
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
