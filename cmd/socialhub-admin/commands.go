package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialhub/internal/auth"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the SQL schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dbmysql.NewDatabase(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.Database.Driver)
		return nil
	},
}

var moderatorCmd = &cobra.Command{
	Use:   "moderator",
	Short: "Manage moderator accounts",
}

var (
	modUsername string
	modEmail    string
	modPassword string
	modLevel    int
)

var createModeratorCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a moderator account",
	Long: `Create a moderator account. Level 1 moderates user reports,
level 2 moderates post and comment reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dbmysql.NewDatabase(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		svc := auth.NewAuthService(
			auth.NewAccountRepository(db),
			common.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
			auth.ProvideEmailService(cfg),
			auth.ProvideOTPPolicy(cfg),
		)
		mod, err := svc.CreateModerator(cmd.Context(), modUsername, modEmail, modPassword, common.ModLevel(modLevel))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created moderator %d (%s, level %d)\n", mod.ID, mod.Email, mod.Level)
		return nil
	},
}

func init() {
	createModeratorCmd.Flags().StringVar(&modUsername, "username", "", "Moderator username")
	createModeratorCmd.Flags().StringVar(&modEmail, "email", "", "Moderator e-mail address")
	createModeratorCmd.Flags().StringVar(&modPassword, "password", "", "Initial password")
	createModeratorCmd.Flags().IntVar(&modLevel, "level", int(common.ModLevelContent), "1 = user moderator, 2 = content moderator")
	_ = createModeratorCmd.MarkFlagRequired("username")
	_ = createModeratorCmd.MarkFlagRequired("email")
	_ = createModeratorCmd.MarkFlagRequired("password")

	moderatorCmd.AddCommand(createModeratorCmd)
}
