package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateRank 排名唯一索引冲突
var ErrDuplicateRank = errors.New("排名唯一约束冲突")

const pgUniqueViolation = "23505"

// isUniqueViolation 识别各驱动的唯一约束错误
// pgx 的错误会被 gorm 翻译为 ErrDuplicatedKey，lib/pq 与 sqlite 需要自己判断
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

// translate 把唯一约束错误统一成 ErrDuplicateRank
func translate(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicateRank
	}
	return err
}
