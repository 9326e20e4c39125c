package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/cityreport/internal/client/api"
	"github.com/dmitrijs2005/cityreport/internal/client/config"
	"github.com/dmitrijs2005/cityreport/internal/client/media"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/client/session"
	"github.com/dmitrijs2005/cityreport/internal/client/storage"
	"github.com/dmitrijs2005/cityreport/internal/logging"
)

// sessionStore is the part of session.Store the commands use.
type sessionStore interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, email, password string) (models.Identity, error)
	Logout(ctx context.Context)
	Current() (models.Identity, bool)
	IsAuthenticated() bool
	IsLoading() bool
	HasRole(roles ...models.Role) bool
}

type App struct {
	config   *config.Config
	session  sessionStore
	api      api.Client
	uploader media.Uploader
	log      logging.Logger
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the local store and builds the client stack described by c.
// Photo uploads are disabled, with a warning, when the bucket cannot be
// configured.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}

	var store *session.Store
	client, err := api.New(c.ServerURL, c.RequestTimeout,
		api.TokenFunc(func() string { return store.Token() }), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store = session.NewStore(client, storage.NewSQLiteKV(db), session.RoleResolver{Default: c.DefaultRole}, log)

	var uploader media.Uploader
	if c.Media.Enabled() {
		u, err := media.NewS3Uploader(ctx, c.Media)
		if err != nil {
			log.Warn(ctx, "photo uploads disabled", "error", err)
		} else {
			uploader = u
		}
	}

	return &App{
		config:   c,
		session:  store,
		api:      client,
		uploader: uploader,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}, nil
}

// Close releases the local store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Restore loads the persisted session. It must run before any command.
func (a *App) Restore(ctx context.Context) {
	a.session.Restore(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// PrintError prints err the way the shell does.
func (a *App) PrintError(err error) {
	if err != nil {
		a.println(UserMessage(err))
	}
}

func (a *App) getStatus() string {
	if a.session.IsLoading() {
		return "(loading)"
	}
	id, ok := a.session.Current()
	if !ok {
		return "(anonymous)"
	}
	return "(" + id.String() + ")"
}

// requireLogin fails unless a session exists.
func (a *App) requireLogin() (models.Identity, error) {
	id, ok := a.session.Current()
	if !ok {
		return models.Identity{}, ErrNotLoggedIn
	}
	return id, nil
}

// requireRole fails unless the user holds one of roles.
func (a *App) requireRole(roles ...models.Role) (models.Identity, error) {
	id, err := a.requireLogin()
	if err != nil {
		return id, err
	}
	if !id.HasRole(roles...) {
		return id, fmt.Errorf("%w (%s)", ErrForbidden, id.Role)
	}
	return id, nil
}
