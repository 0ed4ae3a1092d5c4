package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/bootstrap"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
)

type cargoSubcommand func(ctx context.Context, cmdCtx *commandContext, svcs bootstrap.ServiceContainer, caller *model.User) error

type cargoOptions struct {
	ID   string
	Name string
	Push bool
	JSON bool
	Yes  bool
}

var cargoSubcommands = map[string]struct{}{"list": {}, "create": {}, "update": {}, "delete": {}}

func runCargos(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agenda-admin cargos <%s> [flags]", joinedSubcommands())
	}
	sub := args[0]
	opts, err := parseCargoFlags(sub, args[1:])
	if err != nil {
		return err
	}
	run, err := cargoAction(sub, opts)
	if err != nil {
		return err
	}
	if sub == "delete" {
		if err := confirmAction(cmdCtx.Stdin, cmdCtx.Stdout, opts.Yes, fmt.Sprintf("About to delete role %s.", opts.ID)); err != nil {
			return err
		}
	}

	path, err := sessionFilePath()
	if err != nil {
		return err
	}
	return withServices(cmdCtx, defaultCommandTimeout, func(ctx context.Context, svcs bootstrap.ServiceContainer) error {
		// A missing session yields a nil caller, which the use cases reject as not authorized.
		caller, err := loggedUser(ctx, svcs.Auth, path)
		if err != nil {
			return err
		}
		return run(ctx, cmdCtx, svcs, caller)
	})
}

func cargoAction(sub string, opts cargoOptions) (cargoSubcommand, error) {
	switch sub {
	case "list":
		return func(ctx context.Context, cmdCtx *commandContext, svcs bootstrap.ServiceContainer, caller *model.User) error {
			cargos, err := svcs.Cargos.List.Execute(ctx, caller)
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmdCtx.Stdout, cargos)
			}
			return printCargos(cmdCtx.Stdout, cargos)
		}, nil
	case "create":
		return func(ctx context.Context, cmdCtx *commandContext, svcs bootstrap.ServiceContainer, caller *model.User) error {
			c, err := svcs.Cargos.Create.Execute(ctx, caller, &model.CreateCargoRequest{
				Name:                      opts.Name,
				CanSendAdministrativePush: opts.Push,
			})
			if err != nil {
				return err
			}
			return printCargoResult(cmdCtx, opts, c)
		}, nil
	case "update":
		return func(ctx context.Context, cmdCtx *commandContext, svcs bootstrap.ServiceContainer, caller *model.User) error {
			c, err := svcs.Cargos.Update.Execute(ctx, caller, &model.Cargo{
				ID:                        opts.ID,
				Name:                      opts.Name,
				CanSendAdministrativePush: opts.Push,
			})
			if err != nil {
				return err
			}
			return printCargoResult(cmdCtx, opts, c)
		}, nil
	case "delete":
		return func(ctx context.Context, cmdCtx *commandContext, svcs bootstrap.ServiceContainer, caller *model.User) error {
			if err := svcs.Cargos.Delete.Execute(ctx, caller, opts.ID); err != nil {
				return err
			}
			return writef(cmdCtx.Stdout, "deleted role %s\n", opts.ID)
		}, nil
	default:
		return nil, fmt.Errorf("unknown cargos subcommand %q (want %s)", sub, joinedSubcommands())
	}
}

func printCargoResult(cmdCtx *commandContext, opts cargoOptions, c *model.Cargo) error {
	if opts.JSON {
		return writeJSON(cmdCtx.Stdout, c)
	}
	return printCargo(cmdCtx.Stdout, c)
}

func parseCargoFlags(sub string, args []string) (cargoOptions, error) {
	if _, ok := cargoSubcommands[sub]; !ok {
		return cargoOptions{}, fmt.Errorf("unknown cargos subcommand %q (want %s)", sub, joinedSubcommands())
	}
	fs := flag.NewFlagSet("cargos "+sub, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts cargoOptions
	fs.BoolVar(&opts.JSON, "json", false, "Print JSON instead of a table")
	switch sub {
	case "create":
		fs.StringVar(&opts.Name, "name", "", "Role name")
		fs.BoolVar(&opts.Push, "push", false, "Allow holders to send administrative push notifications")
	case "update":
		fs.StringVar(&opts.ID, "id", "", "Role id")
		fs.StringVar(&opts.Name, "name", "", "New role name")
		fs.BoolVar(&opts.Push, "push", false, "Allow holders to send administrative push notifications")
	case "delete":
		fs.StringVar(&opts.ID, "id", "", "Role id")
		fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	}
	if err := fs.Parse(args); err != nil {
		return cargoOptions{}, err
	}
	if sub == "delete" && opts.ID == "" {
		return cargoOptions{}, errors.New("--id is required")
	}
	return opts, nil
}

func joinedSubcommands() string {
	names := make([]string, 0, len(cargoSubcommands))
	for n := range cargoSubcommands {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}
