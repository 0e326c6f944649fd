package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies every schema file in lexical order. The statements are
// idempotent, so it is safe to run on every start.
func Migrate(ctx context.Context, dbtx DBTX) error {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("schemaFS.ReadFile[%s]: %w", name, err)
		}

		if _, err := dbtx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("dbtx.Exec[%s]: %w", name, err)
		}
	}

	return nil
}
