// Package adduser implements the administrative command that creates a
// user account directly against the database. Accounts go through
// services.UserService.Register, the same path the REST API uses.
package adduser

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/flagx"
	"github.com/dmitrijs2005/gophbudget/internal/server"
	"github.com/dmitrijs2005/gophbudget/internal/server/config"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
)

// Registrar creates accounts. *services.UserService satisfies it.
type Registrar interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
}

type options struct {
	name     string
	email    string
	password string
}

// newRegistrar is a seam for tests. The returned close func releases the
// database connection.
var newRegistrar = func(ctx context.Context, cfg *config.Config) (Registrar, func() error, error) {
	rm := repomanager.NewPostgresRepositoryManager()

	db, err := server.OpenDatabase(ctx, cfg.DatabaseDSN, rm)
	if err != nil {
		return nil, nil, err
	}

	return services.NewUserService(db, rm, cfg), db.Close, nil
}

func parseFlags(args []string) (options, error) {
	args = flagx.FilterArgs(args, []string{"name", "email", "password"})

	var o options
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&o.name, "name", "", "display name")
	fs.StringVar(&o.email, "email", "", "login email")
	fs.StringVar(&o.password, "password", "", "password (prompted when omitted)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if strings.TrimSpace(o.name) == "" || strings.TrimSpace(o.email) == "" {
		return o, errors.New("usage: adduser -name NAME -email EMAIL [-password PASSWORD] [-d DSN]")
	}
	return o, nil
}

// Run executes the command and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.password == "" {
		pw, err := GetPassword(stdout)
		if err != nil {
			fmt.Fprintf(stderr, "read password: %v\n", err)
			return 1
		}
		opts.password = string(pw)
	}

	reg, closeDB, err := newRegistrar(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = closeDB() }()

	res, err := reg.Register(ctx, opts.name, opts.email, opts.password)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			fmt.Fprintln(stderr, ve.Message)
		case errors.Is(err, common.ErrorAlreadyExists):
			fmt.Fprintf(stderr, "user %s already exists\n", services.NormalizeEmail(opts.email))
		default:
			fmt.Fprintf(stderr, "register: %v\n", err)
		}
		return 1
	}

	fmt.Fprintf(stdout, "Created user %s (%s)\n", res.User.ID, res.User.Email)
	return 0
}
