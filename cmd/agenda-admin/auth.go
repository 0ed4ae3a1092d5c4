package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/bootstrap"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/service"
)

type credentialOptions struct {
	Email         string
	Password      string
	PasswordStdin bool
}

type registerOptions struct {
	credentialOptions
	Name       string
	LocationID string
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	if err := opts.resolvePassword(cmdCtx.Stdin); err != nil {
		return err
	}
	path, err := sessionFilePath()
	if err != nil {
		return err
	}

	return withServices(cmdCtx, defaultCommandTimeout, func(ctx context.Context, svcs bootstrap.ServiceContainer) error {
		res, err := svcs.Login.Execute(ctx, opts.Email, opts.Password)
		if err != nil {
			return err
		}
		if err := saveSessionID(path, res.Session.ID); err != nil {
			return err
		}
		cmdCtx.Logger.Info("logged in", "user_id", res.User.ID, "is_admin", res.User.IsAdmin)
		return printUser(cmdCtx.Stdout, res.User)
	})
}

func runRegister(cmdCtx *commandContext, args []string) error {
	opts, err := parseRegisterFlags(args)
	if err != nil {
		return err
	}
	if err := opts.resolvePassword(cmdCtx.Stdin); err != nil {
		return err
	}

	return withServices(cmdCtx, defaultCommandTimeout, func(ctx context.Context, svcs bootstrap.ServiceContainer) error {
		user, err := svcs.Auth.Register(ctx, service.RegisterInput{
			Name:       opts.Name,
			Email:      opts.Email,
			Password:   opts.Password,
			LocationID: opts.LocationID,
		})
		if err != nil {
			return err
		}
		if err := writeln(cmdCtx.Stdout, "Registered. Log in with `agenda-admin login`."); err != nil {
			return err
		}
		return printUser(cmdCtx.Stdout, user)
	})
}

func runWhoAmI(cmdCtx *commandContext, _ []string) error {
	path, err := sessionFilePath()
	if err != nil {
		return err
	}
	return withServices(cmdCtx, defaultCommandTimeout, func(ctx context.Context, svcs bootstrap.ServiceContainer) error {
		user, err := loggedUser(ctx, svcs.Auth, path)
		if err != nil {
			return err
		}
		return printUser(cmdCtx.Stdout, user)
	})
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	path, err := sessionFilePath()
	if err != nil {
		return err
	}
	sessionID, err := loadSessionID(path)
	if err != nil {
		return err
	}
	if sessionID == "" {
		return writeln(cmdCtx.Stdout, "not logged in")
	}
	return withServices(cmdCtx, defaultCommandTimeout, func(ctx context.Context, svcs bootstrap.ServiceContainer) error {
		if err := svcs.Auth.Logout(ctx, sessionID); err != nil {
			return err
		}
		if err := clearSessionID(path); err != nil {
			return err
		}
		return writeln(cmdCtx.Stdout, "logged out")
	})
}

// loggedUser resolves the remembered session. A session the gateway no longer
// knows is forgotten locally.
func loggedUser(ctx context.Context, auth *service.AuthService, path string) (*model.User, error) {
	sessionID, err := loadSessionID(path)
	if err != nil || sessionID == "" {
		return nil, err
	}
	user, err := auth.GetLoggedUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if clearErr := clearSessionID(path); clearErr != nil {
			return nil, clearErr
		}
	}
	return user, nil
}

func (o *credentialOptions) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Email, "email", "", "Account email")
	fs.StringVar(&o.Password, "password", "", "Account password (prefer --password-stdin)")
	fs.BoolVar(&o.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")
}

func (o *credentialOptions) resolvePassword(in io.Reader) error {
	if !o.PasswordStdin {
		return nil
	}
	if o.Password != "" {
		return errors.New("--password and --password-stdin are mutually exclusive")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	o.Password = strings.TrimRight(line, "\r\n")
	return nil
}

func parseLoginFlags(args []string) (credentialOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts credentialOptions
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return credentialOptions{}, err
	}
	return opts, nil
}

func parseRegisterFlags(args []string) (registerOptions, error) {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts registerOptions
	opts.bind(fs)
	fs.StringVar(&opts.Name, "name", "", "Display name")
	fs.StringVar(&opts.LocationID, "location", "", "Primary location id (defaults to AUTH_DEFAULT_LOCATION_ID)")
	if err := fs.Parse(args); err != nil {
		return registerOptions{}, err
	}
	return opts, nil
}
