package postgres

import "github.com/Masterminds/squirrel"

// Psql is the squirrel statement builder configured for PostgreSQL
// placeholders ($1, $2, ...).
var Psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
