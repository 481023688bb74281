package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/app"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// withAuth opens the configured store and hands fn an auth service that
// issues no tokens and revokes nothing.
func withAuth(ctx context.Context, e *env, fn func(*auth.Service) error) error {
	stores, err := app.OpenStores(ctx, e.cfg.Database, e.log)
	if err != nil {
		return err
	}
	defer stores.Close()

	tokens := auth.NewTokenService(e.cfg.Auth.JWTSecret, e.cfg.Auth.TokenTTL)
	return fn(auth.NewService(stores.Users, auth.BcryptHasher{Cost: bcrypt.DefaultCost}, tokens, nil, e.log))
}

func createAdminCmd(e *env) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Create an account with the admin role. Public signup always creates
regular users, so this is the only way to bootstrap an administrator.

The password may be given with --password or the ADMIN_PASSWORD variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				return fmt.Errorf("a password is required (--password or ADMIN_PASSWORD)")
			}

			return withAuth(cmd.Context(), e, func(svc *auth.Service) error {
				user, err := svc.Provision(cmd.Context(), name, email, password, models.RoleAdmin)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password, at least 8 characters")
	cmd.MarkFlagRequired("email")

	return cmd
}

func setRoleCmd(e *env) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change the role of an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(cmd.Context(), e, func(svc *auth.Service) error {
				user, err := svc.SetRole(cmd.Context(), email, models.Role(role))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "user or admin")
	cmd.MarkFlagRequired("email")

	return cmd
}
