package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophcourses/internal/client/client"
	"github.com/dmitrijs2005/gophcourses/internal/client/config"
	"github.com/dmitrijs2005/gophcourses/internal/common"
)

// ErrUsage is returned for an unknown or missing command.
var ErrUsage = errors.New("usage: client <register|login|me|update [id]|ping> [-a addr] [-token token]")

// API is the part of the gRPC client the commands use.
type API interface {
	Register(ctx context.Context, email, password, name, date string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*client.Profile, error)
	UpdateProfile(ctx context.Context, id, name, date string) (string, error)
	Ping(ctx context.Context) error
}

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(api API, in io.Reader, out io.Writer) *App {
	return &App{api: api, reader: bufio.NewReader(in), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "me":
		return a.Me(ctx)
	case "update":
		var id string
		if len(args) > 1 {
			id = args[1]
		}
		return a.Update(ctx, id)
	case "ping":
		if err := a.api.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "OK")
		return nil
	default:
		return ErrUsage
	}
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	date, err := GetSimpleText(a.reader, "Date", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Register(ctx, email, string(password), name, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login success\nexport %s=%s\n", config.EnvToken, token)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	p, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:    %s\nname:  %s\nemail: %s\ndate:  %s\n", p.ID, p.Name, p.Email, p.Date)
	return nil
}

// Update changes name and date of id, or of the caller's own account when
// id is empty.
func (a *App) Update(ctx context.Context, id string) error {
	if id == "" {
		p, err := a.api.Me(ctx)
		if err != nil {
			return err
		}
		id = p.ID
	}

	name, err := GetSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	date, err := GetSimpleText(a.reader, "New date", a.out)
	if err != nil {
		return err
	}

	msg, err := a.api.UpdateProfile(ctx, id, name, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
