package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/profSauloRenato/agenda-setor-vespasiano/config"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/bootstrap"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/data"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/devseed"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/migrate"
)

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
	Regional    string
	Admin       devseed.Admin
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		if opts.Status {
			return printMigrationStatus(ctx, cmdCtx, db)
		}
		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func printMigrationStatus(ctx context.Context, cmdCtx *commandContext, db *sql.DB) error {
	files, err := migrate.Files()
	if err != nil {
		return err
	}
	applied, err := migrate.Applied(ctx, db)
	if err != nil {
		return err
	}
	for _, f := range files {
		state := "pending"
		if slices.Contains(applied, f) {
			state = "applied"
		}
		if err := writef(cmdCtx.Stdout, "%-8s %s\n", state, f); err != nil {
			return err
		}
	}
	return nil
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}
	plan, err := seedPlan(cmdCtx.Config.Auth, opts)
	if err != nil {
		return err
	}

	if _, guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "seed development data on the configured database"); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding development data")
		stores := devseed.Stores{
			Locations: data.NewLocationRepo(db),
			Cargos:    data.NewCargoRepo(db),
			Profiles:  data.NewUserProfileRepo(db),
		}
		if seedErr := devseed.Run(ctx, stores, plan, cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

// seedPlan seeds the --admin-* identity when given; otherwise, in mock auth mode,
// every configured dev account becomes an administrator.
func seedPlan(auth config.AuthConfig, opts dbSeedOptions) (devseed.Plan, error) {
	plan := devseed.Plan{RegionalName: opts.Regional, AdminRoleName: auth.AdminRoleName}
	if opts.Admin.ID != "" {
		plan.Admins = []devseed.Admin{opts.Admin}
		return plan, nil
	}
	if auth.Mode != config.AuthModeMock {
		return plan, errors.New("--admin-id and --admin-email are required unless AUTH_MODE=mock")
	}
	accounts, err := config.ParseDevAccounts(auth.DevAuth.Accounts)
	if err != nil {
		return plan, err
	}
	for _, a := range accounts {
		plan.Admins = append(plan.Admins, devseed.Admin{ID: a.ID, Email: a.Email})
	}
	return plan, nil
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete",
	)
	fs.BoolVar(&opts.Status, "status", false, "List migrations and whether each has been applied")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbSeedOptions{}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for seeding to complete",
	)
	fs.BoolVar(
		&opts.AllowRemote,
		"allow-remote",
		false,
		"Permit running against database hosts that do not look local",
	)
	fs.StringVar(&opts.Regional, "regional", devseed.DefaultRegionalName, "Name of the root Regional location")
	fs.StringVar(&opts.Admin.ID, "admin-id", "", "Identity id (gateway subject) to grant the administrator role")
	fs.StringVar(&opts.Admin.Email, "admin-email", "", "Email for the --admin-id profile")
	fs.StringVar(&opts.Admin.Name, "admin-name", "", "Display name for the --admin-id profile")

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}
	opts.Admin.ID = strings.TrimSpace(opts.Admin.ID)
	opts.Admin.Email = strings.TrimSpace(opts.Admin.Email)
	if (opts.Admin.ID == "") != (opts.Admin.Email == "") {
		return dbSeedOptions{}, errors.New("--admin-id and --admin-email must be given together")
	}
	return opts, nil
}
