package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/config"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/admins"
	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin allow-list",
	Long: `Manage which email addresses may use the admin dashboard.

Allow-list membership is checked on every privileged request, so adding
or removing an address takes effect immediately without touching
existing sessions.`,
}

var adminAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add an email to the admin allow-list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdminService(func(ctx context.Context, service *admins.Service) error {
			if err := service.Grant(ctx, args[0]); err != nil {
				return fmt.Errorf("add admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s to the admin allow-list\n", admins.NormalizeEmail(args[0]))
			return nil
		})
	},
}

var adminRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Remove an email from the admin allow-list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdminService(func(ctx context.Context, service *admins.Service) error {
			if err := service.Revoke(ctx, args[0]); err != nil {
				return fmt.Errorf("remove admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s from the admin allow-list\n", admins.NormalizeEmail(args[0]))
			return nil
		})
	},
}

func withAdminService(fn func(ctx context.Context, service *admins.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := config.NewLogger(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	service := admins.NewService(postgres.NewAdminRepository(pool), logger)
	return fn(ctx, service)
}

func init() {
	adminCmd.AddCommand(adminAddCmd)
	adminCmd.AddCommand(adminRemoveCmd)
}
