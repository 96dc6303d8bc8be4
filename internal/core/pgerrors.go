// AngelaMos | 2026
// pgerrors.go

package core

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsDuplicateKeyError(err error) bool {
	return sqlState(err) == sqlStateUniqueViolation
}

func IsForeignKeyError(err error) bool {
	return sqlState(err) == sqlStateForeignKeyViolation
}

// IsCheckViolation reports a rejected CHECK constraint, such as a status
// outside its enumeration.
func IsCheckViolation(err error) bool {
	return sqlState(err) == sqlStateCheckViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
