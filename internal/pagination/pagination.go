// Package pagination implements ranked keyset pagination. Listings are
// ordered by (score DESC, id ASC); the id tie-break makes the order
// total, so pages never repeat or skip rows even when scores collide.
package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

// Cursor marks a resume point: the score and id of the last row of the
// previous page.
type Cursor struct {
	Score float64
	ID    int
}

// Ranked describes one ranked listing. ScoreExpr is the SQL expression
// producing the score (a similarity() call, or a vote-count aggregate);
// the query selecting it must alias it as ScoreAlias so it can be
// ordered on. IDColumn is the qualified tie-break column.
type Ranked struct {
	ScoreExpr  string
	ScoreArgs  []any
	ScoreAlias string
	IDColumn   string
	Limit      int

	// Aggregate scores are not visible to WHERE; their resume
	// predicate has to live in HAVING.
	Aggregate bool
}

// Scope applies the ordering, page limit and, when resuming, the keyset
// predicate:
//
//	score < cursor OR (score = cursor AND id > id_cursor)
//
// which continues strictly past the last-seen row under the
// (score DESC, id ASC) order.
func (r Ranked) Scope(cur *Cursor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cur != nil {
			pred := fmt.Sprintf("((%s) < ? OR ((%s) = ? AND %s > ?))",
				r.ScoreExpr, r.ScoreExpr, r.IDColumn)

			args := make([]any, 0, 2*len(r.ScoreArgs)+3)
			args = append(args, r.ScoreArgs...)
			args = append(args, cur.Score)
			args = append(args, r.ScoreArgs...)
			args = append(args, cur.Score, cur.ID)

			if r.Aggregate {
				db = db.Having(pred, args...)
			} else {
				db = db.Where(pred, args...)
			}
		}

		return db.
			Order(fmt.Sprintf("%s DESC, %s ASC", r.ScoreAlias, r.IDColumn)).
			Limit(r.Limit)
	}
}

// Page is one bounded page of rows plus the cursor that resumes after
// its final row.
type Page[T any] struct {
	Items []T
	Next  Cursor
}

// NewPage wraps the rows scanned for one page, taking the next cursor
// from the last row. ok is false for an empty page, which callers treat
// as no more data.
func NewPage[T any](items []T, last func(T) Cursor) (Page[T], bool) {
	if len(items) == 0 {
		return Page[T]{}, false
	}
	return Page[T]{Items: items, Next: last(items[len(items)-1])}, true
}
