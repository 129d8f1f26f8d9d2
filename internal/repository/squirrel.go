package repository

import sq "github.com/Masterminds/squirrel"

// psql builds statements with $N placeholders; every repository query in this
// package starts from it.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
