package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

// Schema scripts
const (
	SchemaDocs    = "docs.sql"
	SchemaReports = "reports.sql"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchemas executes the embedded SQL scripts (see SchemaDocs and
// SchemaReports) in the given order. The scripts are idempotent.
func CreateSchemas(pool *sqlitex.Pool, schemaNames ...string) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	for _, name := range schemaNames {
		scriptPath := path.Join("sql", name)
		script, err := sqlFiles.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
		}

		if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
			return fmt.Errorf("failed to execute script %s: %w", name, err)
		}
	}

	return nil
}
