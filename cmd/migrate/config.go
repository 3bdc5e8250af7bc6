package main

import (
	"io/fs"
	"os"

	"picturebooks/db/migrations"
)

// migrationSource returns the filesystem goose reads from and the directory
// inside it. MIGRATIONS_DIR points at SQL files on disk; otherwise the
// migrations compiled into the binary are used.
func migrationSource() (fs.FS, string) {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return nil, v
	}
	return migrations.FS, "."
}
