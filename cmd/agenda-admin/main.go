package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/profSauloRenato/agenda-setor-vespasiano/config"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/bootstrap"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
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
	Stdin  io.Reader
	Stdout io.Writer
}

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 30 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			slog.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.Log)

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		if msgErr := writeln(os.Stderr, describeError(runErr)); msgErr != nil {
			logger.Error("print error failed", "error", msgErr)
		}
		os.Exit(exitCode(runErr)) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations (or list them with --status)",
			run:         runMigrations,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run migrations and seed a root location, the admin role and dev admin profiles",
			run:         runDBSeed,
		},
		"register": {
			name:        "register",
			description: "Create an identity and its user profile",
			run:         runRegister,
		},
		"login": {
			name:        "login",
			description: "Log in and remember the session for later commands",
			run:         runLogin,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the logged-in user with roles and admin status",
			run:         runWhoAmI,
		},
		"logout": {
			name:        "logout",
			description: "End the remembered session",
			run:         runLogout,
		},
		"cargos": {
			name:        "cargos",
			description: "Manage roles: list | create | update | delete (administrators only)",
			run:         runCargos,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: agenda-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-12s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// describeError renders the user-facing message for err. Application errors show
// their message (and field, for validation); anything else is printed as is.
func describeError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "error: " + err.Error()
	}
	msg := appErr.Message
	if appErr.Field != "" {
		msg = fmt.Sprintf("%s (field: %s)", msg, appErr.Field)
	}
	if appErr.Code == apperrors.ErrCodeRegistrationIncomplete || appErr.Code == apperrors.ErrCodeInternal {
		if appErr.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, appErr.Cause)
		}
	}
	return fmt.Sprintf("error [%s]: %s", appErr.Code, msg)
}

func exitCode(err error) int {
	code := apperrors.GetCode(err)
	switch {
	case code.IsAuthFailure():
		return 3
	case code.IsRequestError():
		return 4
	default:
		return 1
	}
}
