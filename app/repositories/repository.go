package repositories

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")

	ErrBackupUnsupported = errors.New("backup is not supported by this storage driver")
)

// Storage drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Welcome post seeded into an empty store.
const (
	WelcomeTitle = "Welcome to your blog"
	WelcomeBody  = "This sample post shows how posts and comments are managed with Go and htmx."
)

// Options selects and configures a storage backend.
type Options struct {
	Driver string
	// Path is the sqlite database file.
	Path string
	// DSN is the postgres connection string.
	DSN string
	// BadgerDir is the badger directory, ignored when InMemory is set.
	BadgerDir string
	InMemory  bool
}

// Open opens the configured backend. The caller owns the returned Store and must Close it.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DSN)
	case DriverBadger:
		return OpenBadger(opts.BadgerDir, opts.InMemory)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
