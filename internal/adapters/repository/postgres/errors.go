package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	notNullViolationCode    = "23502"
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
	checkViolationCode      = "23514"
)

// translateConstraintError は整合性制約違反を kind でラップします。
// 元の *pgconn.PgError はエラーチェーンに残ります。
func translateConstraintError(err error, kind error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode, foreignKeyViolationCode, uniqueViolationCode, checkViolationCode:
			return fmt.Errorf("%w: %s: %w", kind, pgErr.ConstraintName, err)
		}
	}

	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
