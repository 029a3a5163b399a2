package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/med-cms/internal/adapter"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

const usage = `commands:
  health | version
  login -email E -password P
  logout | me
  check-id NUMBER
  ids list [-status available|used|inactive] [-search S] [-sort-by F] [-sort-order asc|desc] [-page N] [-per-page N]
  ids stats
  ids batch -prefix P -start N -end N [-description D]
  ids release ID
  ids toggle ID`

type App struct {
	server adapter.ServerAdapter
	out    io.Writer
	logger *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(server adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	return &App{server: server, out: out, logger: logger}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrUsage, usage)
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("command", cmd).Msg("running")

	switch cmd {
	case "health":
		return a.print(a.server.Health(ctx))
	case "version":
		version, err := a.server.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, version)
		return err
	case "login":
		return a.login(ctx, rest)
	case "logout":
		if err := a.server.Logout(ctx); err != nil {
			return err
		}
		return a.print(map[string]bool{"logged_out": true}, nil)
	case "me":
		return a.print(a.server.Me(ctx))
	case "check-id":
		if len(rest) != 1 {
			return fmt.Errorf("%w: check-id NUMBER", ErrUsage)
		}
		return a.print(a.server.CheckIdentificationNumber(ctx, rest[0]))
	case "ids":
		return a.identificationNumbers(ctx, rest)
	}

	return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, cmd, usage)
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest
	fs := newFlagSet("login")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: login -email E -password P", ErrUsage)
	}

	return a.print(a.server.Login(ctx, req))
}

func (a *App) identificationNumbers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: ids list|stats|batch|release|toggle", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		var filter models.IdentificationNumberFilter
		var status string
		fs := newFlagSet("ids list")
		fs.StringVar(&status, "status", "", "available, used or inactive")
		fs.StringVar(&filter.Search, "search", "", "number or description substring")
		fs.StringVar(&filter.SortBy, "sort-by", "", "sort column")
		fs.StringVar(&filter.SortOrder, "sort-order", "", "asc or desc")
		fs.IntVar(&filter.Page, "page", 0, "page number")
		fs.IntVar(&filter.PerPage, "per-page", 0, "page size")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		filter.Status = models.IdentificationNumberStatus(status)

		page, err := a.server.ListIdentificationNumbers(ctx, filter)
		if err != nil {
			return err
		}
		return a.print(map[string]any{
			"items":      page.Items,
			"pagination": page.Pagination,
			"stats":      page.Stats,
		}, nil)
	case "stats":
		return a.print(a.server.IdentificationNumberReport(ctx))
	case "batch":
		var req models.BatchRequest
		var description string
		fs := newFlagSet("ids batch")
		fs.StringVar(&req.Prefix, "prefix", "", "number prefix")
		fs.IntVar(&req.Start, "start", 0, "first sequence value")
		fs.IntVar(&req.End, "end", 0, "last sequence value")
		fs.StringVar(&description, "description", "", "description of every created number")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if description != "" {
			req.Description = &description
		}
		return a.print(a.server.CreateIdentificationNumberBatch(ctx, req))
	case "release", "toggle":
		if len(rest) != 1 {
			return fmt.Errorf("%w: ids %s ID", ErrUsage, sub)
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("%w: invalid id %q", ErrUsage, rest[0])
		}
		if sub == "release" {
			return a.print(a.server.ReleaseIdentificationNumber(ctx, id))
		}
		return a.print(a.server.ToggleIdentificationNumber(ctx, id))
	}

	return fmt.Errorf("%w ids %q\n%s", ErrUnknownCommand, sub, usage)
}

func (a *App) print(v any, err error) error {
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
