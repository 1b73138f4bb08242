package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TurnRecord is one persisted question/answer exchange.
type TurnRecord struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"date"`
}

// SortField is one parsed element of a sort specification.
type SortField struct {
	Column string
	Desc   bool
}

// ListQuery describes the read contract of the history view: substring filter
// over question or answer, ordered by the parsed sort list, offset/limit
// pagination where Length -1 means everything.
type ListQuery struct {
	Filter string
	Sort   []SortField
	Start  int
	Length int
}

// sortColumns whitelists the ORDER BY targets; the map value is the real
// column name interpolated into SQL.
var sortColumns = map[string]string{
	"id":       "id",
	"date":     "created_at",
	"question": "question",
	"answer":   "answer",
}

// ParseSort turns a comma-separated field list with leading +/- direction
// markers into sort fields. Unknown fields become date ascending; an empty
// spec sorts by date.
func ParseSort(spec string) []SortField {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return []SortField{{Column: "created_at"}}
	}

	var fields []SortField
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		desc := false
		switch part[0] {
		case '-':
			desc = true
			part = part[1:]
		case '+':
			part = part[1:]
		}

		column, ok := sortColumns[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			column = "created_at"
		}
		fields = append(fields, SortField{Column: column, Desc: desc})
	}

	if len(fields) == 0 {
		return []SortField{{Column: "created_at"}}
	}
	return fields
}

func orderByClause(fields []SortField) string {
	if len(fields) == 0 {
		fields = []SortField{{Column: "created_at"}}
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		parts[i] = f.Column + " " + dir
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// AppendTurn writes one completed exchange to the conversation log.
func (s *Store) AppendTurn(ctx context.Context, rec TurnRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversation_log (id, session_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.SessionID, rec.Question, rec.Answer, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// ListTurns returns the matching records plus the total and post-filter
// counts for the pagination envelope.
func (s *Store) ListTurns(ctx context.Context, q ListQuery) ([]TurnRecord, int, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM conversation_log`).Scan(&total); err != nil {
		return nil, 0, 0, fmt.Errorf("count turns: %w", err)
	}

	where := ""
	args := []any{}
	if q.Filter != "" {
		where = "WHERE question ILIKE $1 OR answer ILIKE $1"
		args = append(args, "%"+q.Filter+"%")
	}

	filtered := total
	if q.Filter != "" {
		countQuery := "SELECT count(*) FROM conversation_log " + where
		if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&filtered); err != nil {
			return nil, 0, 0, fmt.Errorf("count filtered turns: %w", err)
		}
	}

	query := "SELECT id, session_id, question, answer, created_at FROM conversation_log " +
		where + " " + orderByClause(q.Sort)

	if q.Length >= 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Length)
		if q.Start > 0 {
			query += fmt.Sprintf(" OFFSET %d", q.Start)
		}
	} else if q.Start > 0 {
		query += fmt.Sprintf(" OFFSET %d", q.Start)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var records []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Question, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, 0, 0, fmt.Errorf("scan turn row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("iterate turn rows: %w", err)
	}

	return records, total, filtered, nil
}
