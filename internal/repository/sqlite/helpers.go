package sqlite

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const defaultListLimit = 200

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// parsePhase tolerates unknown stored names; the zero Phase is repaired by
// the scheduler's Normalize.
func parsePhase(log *logger.Logger, s string) flashcard.Phase {
	p, err := flashcard.ParsePhase(s)
	if err != nil {
		log.Warn("unknown stored phase %q", s)
		return 0
	}
	return p
}

func clampLimit(limit int) uint64 {
	if limit <= 0 || limit > defaultListLimit {
		return defaultListLimit
	}
	return uint64(limit)
}
