package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/library-api/cmd/library-admin/ui"
	"github.com/redmonkez12/library-api/internal/auth"
	"github.com/redmonkez12/library-api/internal/catalog"
	"github.com/redmonkez12/library-api/internal/config"
	"github.com/redmonkez12/library-api/internal/database"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/user"
	"github.com/redmonkez12/library-api/internal/validation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "library-admin",
		Short: "Administrative tasks for the library API",
		Long:  "Create the database schema and seed users and authors without going through the HTTP API.",
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables",
		RunE:  runMigrate,
	}
	migrateCmd.Flags().Bool("drop", false, "Drop all tables before creating them")

	createUserCmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a verified user",
		Long:  "Creates a user with is_otp_verified set. Missing fields are asked for interactively.",
		RunE:  runCreateUser,
	}
	createUserCmd.Flags().String("username", "", "Username")
	createUserCmd.Flags().String("email", "", "Email address")
	createUserCmd.Flags().String("password", "", "Password")
	createUserCmd.Flags().String("phone", "", "Phone number in E.164 format")
	createUserCmd.Flags().String("user-type", "", "User type")
	createUserCmd.Flags().String("first-name", "", "First name")
	createUserCmd.Flags().String("last-name", "", "Last name")

	addAuthorCmd := &cobra.Command{
		Use:   "add-author",
		Short: "Add an author",
		RunE:  runAddAuthor,
	}
	addAuthorCmd.Flags().String("name", "", "Author name")
	addAuthorCmd.Flags().String("bio", "", "Short biography")

	rootCmd.AddCommand(migrateCmd, createUserCmd, addAuthorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	drop, _ := cmd.Flags().GetBool("drop")

	return withDB(cmd.Context(), func(ctx context.Context, db *bun.DB) error {
		if drop {
			if err := database.DropSchema(ctx, db); err != nil {
				return err
			}
			ui.PrintInfo("Dropped existing tables")
		}

		if err := database.CreateSchema(ctx, db); err != nil {
			return err
		}

		ui.PrintSuccess("Schema is up to date")
		return nil
	})
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	var req auth.SignupRequest
	req.Username, _ = cmd.Flags().GetString("username")
	req.Email, _ = cmd.Flags().GetString("email")
	req.Password, _ = cmd.Flags().GetString("password")
	req.PhoneNumber, _ = cmd.Flags().GetString("phone")
	req.UserType, _ = cmd.Flags().GetString("user-type")
	req.FirstName, _ = cmd.Flags().GetString("first-name")
	req.LastName, _ = cmd.Flags().GetString("last-name")

	if !ui.UserComplete(&req) {
		fmt.Println()
		fmt.Println("  New user")
		fmt.Println()

		if err := ui.RunUserForm(&req); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	if err := validation.New().Struct(req); err != nil {
		ui.PrintError(err.Error())
		return err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return withDB(cmd.Context(), func(ctx context.Context, db *bun.DB) error {
		u, err := user.NewRepository(db).Create(ctx, user.CreateParams{
			Username:      req.Username,
			Email:         req.Email,
			PasswordHash:  passwordHash,
			PhoneNumber:   req.PhoneNumber,
			UserType:      strings.ToUpper(req.UserType),
			IsOTPVerified: true,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
		})
		if err != nil {
			if errors.Is(err, user.ErrDuplicateUsername) || errors.Is(err, user.ErrDuplicateEmail) {
				ui.PrintError(err.Error())
			}
			return err
		}

		ui.PrintUser(u)
		return nil
	})
}

func runAddAuthor(cmd *cobra.Command, args []string) error {
	var in catalog.AuthorInput
	in.Name, _ = cmd.Flags().GetString("name")
	in.Bio, _ = cmd.Flags().GetString("bio")

	if strings.TrimSpace(in.Name) == "" {
		if err := ui.RunAuthorForm(&in); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	return withDB(cmd.Context(), func(ctx context.Context, db *bun.DB) error {
		service := catalog.NewService(catalog.NewRepository(db), validation.New(), logging.NewNopLogger())

		author, err := service.CreateAuthor(ctx, in)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		ui.PrintSuccess(fmt.Sprintf("Added author %q (%s)", author.Name, author.ID))
		return nil
	})
}

// withDB opens the database configured by the environment for the duration
// of fn. Only the DB_* settings are read.
func withDB(ctx context.Context, fn func(ctx context.Context, db *bun.DB) error) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}
