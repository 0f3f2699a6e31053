package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medikita/platform/internal/identity"
	"github.com/medikita/platform/internal/repository"
)

const (
	auditActionGrant  = "GRANT"
	auditActionRevoke = "REVOKE"
)

// AdminDirectory is the slice of the identity client the grant commands
// need.
type AdminDirectory interface {
	AdminGetUserByEmail(ctx context.Context, email string) (*identity.User, error)
	AdminUpdateUserMetadata(ctx context.Context, userID string, metadata map[string]any) error
}

// RoleGranter flips the admin role marker on identity-provider accounts
// and records each change in the local audit trail.
type RoleGranter struct {
	directory AdminDirectory
	audit     repository.RoleAuditRepository
	logger    *zap.Logger
}

// NewRoleGranter constructs the granter.
func NewRoleGranter(directory AdminDirectory, audit repository.RoleAuditRepository, logger *zap.Logger) *RoleGranter {
	return &RoleGranter{directory: directory, audit: audit, logger: logger}
}

// GrantAdmin marks the account with the given email as an administrator.
func (g *RoleGranter) GrantAdmin(ctx context.Context, actor, email string) error {
	return g.setRole(ctx, actor, email, identity.RoleAdmin, auditActionGrant)
}

// RevokeAdmin removes the administrator marker from the account.
func (g *RoleGranter) RevokeAdmin(ctx context.Context, actor, email string) error {
	return g.setRole(ctx, actor, email, identity.RoleStandard, auditActionRevoke)
}

func (g *RoleGranter) setRole(ctx context.Context, actor, email string, role identity.Role, action string) error {
	user, err := g.directory.AdminGetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", email, err)
	}

	metadata := map[string]any{}
	for k, v := range user.Metadata {
		metadata[k] = v
	}
	if role == identity.RoleAdmin {
		metadata["role"] = "admin"
	} else {
		delete(metadata, "role")
	}

	if err := g.directory.AdminUpdateUserMetadata(ctx, user.ID, metadata); err != nil {
		return fmt.Errorf("update metadata for %s: %w", email, err)
	}

	entry := &repository.RoleAuditEntry{
		Actor:       actor,
		TargetEmail: email,
		Action:      action,
	}
	if err := g.audit.Append(ctx, entry); err != nil {
		// The role change already happened; surface the audit failure
		// loudly instead of rolling back.
		g.logger.Error("role changed but audit write failed",
			zap.String("email", email),
			zap.String("action", action),
			zap.Error(err))
		return fmt.Errorf("audit %s for %s: %w", action, email, err)
	}

	g.logger.Info("role updated",
		zap.String("email", email),
		zap.String("action", action),
		zap.String("actor", actor))
	return nil
}
