package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// NewMockPool returns a pgxmock pool for repository tests. It satisfies DBTX,
// so any repository constructor accepts it in place of a live pgxpool. Queries
// are matched as regular expressions; tests should call ExpectationsWereMet
// before finishing.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
}
