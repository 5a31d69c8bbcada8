package shared

import (
	"context"

	"table-reservation/internal/infra/pgsql"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error
}

type Tx interface {
	DB() pgsql.DBTX
}
