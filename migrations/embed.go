// Package migrations embeds the SQL migration files for every SQL backend so
// they can be applied with the goose provider API from the server, the CLI
// and tests, without relying on a filesystem path at runtime.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the Postgres migrations rooted at the directory itself,
// as goose expects.
func Postgres() fs.FS {
	return mustSub("postgres")
}

// SQLite returns the SQLite migrations.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
