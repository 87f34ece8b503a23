package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/dialtone/config"
	"github.com/target/dialtone/internal/bootstrap"
	"github.com/target/dialtone/internal/data"
	"github.com/target/dialtone/internal/devseed"
	"github.com/target/dialtone/internal/validation"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

const defaultCommandTimeout = 2 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development login accounts",
			run:         runDBSeed,
		},
		"user-create": {
			name:        "user-create",
			description: "Create a login account with a bcrypt-hashed password",
			run:         runUserCreate,
		},
		"user-get": {
			name:        "user-get",
			description: "Look up a user record by id",
			run:         runUserGet,
		},
		"hash-password": {
			name:        "hash-password",
			description: "Print the bcrypt hash of a password at the configured cost",
			run:         runHashPassword,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: dialtone-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

type migrateOptions struct {
	Timeout time.Duration
}

type userCreateOptions struct {
	Phone    string
	Password string
}

type userGetOptions struct {
	ID string
}

type hashPasswordOptions struct {
	Password string
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete",
	)

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}

	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseUserCreateFlags(args []string) (userCreateOptions, error) {
	fs := flag.NewFlagSet("user-create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts userCreateOptions
	fs.StringVar(&opts.Phone, "phone", "", "Phone identifier for the new account")
	fs.StringVar(&opts.Password, "password", "", "Password for the new account")

	if err := fs.Parse(args); err != nil {
		return userCreateOptions{}, err
	}

	if msg := validation.Phone(opts.Phone); msg != "" {
		return userCreateOptions{}, fmt.Errorf("--phone: %s", msg)
	}
	if msg := validation.Password(opts.Password); msg != "" {
		return userCreateOptions{}, fmt.Errorf("--password: %s", msg)
	}

	return opts, nil
}

func parseUserGetFlags(args []string) (userGetOptions, error) {
	fs := flag.NewFlagSet("user-get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts userGetOptions
	fs.StringVar(&opts.ID, "id", "", "User id to look up")

	if err := fs.Parse(args); err != nil {
		return userGetOptions{}, err
	}

	if opts.ID == "" {
		return userGetOptions{}, errors.New("--id is required")
	}

	return opts, nil
}

func parseHashPasswordFlags(args []string) (hashPasswordOptions, error) {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts hashPasswordOptions
	fs.StringVar(&opts.Password, "password", "", "Password to hash")

	if err := fs.Parse(args); err != nil {
		return hashPasswordOptions{}, err
	}

	if msg := validation.Password(opts.Password); msg != "" {
		return hashPasswordOptions{}, fmt.Errorf("--password: %s", msg)
	}

	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")

		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding development login accounts")
		svcs := devseed.NewServices(db, cmdCtx.Config.Auth.BcryptCost)
		if seedErr := devseed.Run(ctx, svcs, cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

func runUserCreate(cmdCtx *commandContext, args []string) error {
	opts, err := parseUserCreateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		users := data.NewUserRepo(db)
		user, createErr := users.Create(ctx, opts.Phone, opts.Password, cmdCtx.Config.Auth.BcryptCost)
		if createErr != nil {
			return fmt.Errorf("create user: %w", createErr)
		}

		cmdCtx.Logger.Info("user created", "id", user.ID, "phone", user.Phone)
		return writef(os.Stdout, "%s\n", user.ID)
	})
}

func runUserGet(cmdCtx *commandContext, args []string) error {
	opts, err := parseUserGetFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		users := data.NewUserRepo(db)
		user, getErr := users.GetByID(ctx, opts.ID)
		if getErr != nil {
			return fmt.Errorf("get user: %w", getErr)
		}

		return printJSON(os.Stdout, user)
	})
}

func runHashPassword(cmdCtx *commandContext, args []string) error {
	opts, err := parseHashPasswordFlags(args)
	if err != nil {
		return err
	}

	hash, err := data.HashPassword(opts.Password, cmdCtx.Config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return writef(os.Stdout, "%s\n", hash)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}
