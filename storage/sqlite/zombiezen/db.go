package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool creates a SQLite connection pool for the database file, creating
// it if missing. The sqlitex defaults open the database in WAL mode.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// Open creates the pool and ensures all the schemas exist.
func Open(dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}

	if err := CreateSchemas(pool, SchemaDocs, SchemaReports); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
