package holiday

import (
	"fmt"
	"strings"
	"time"
)

// Predicate is one optional WHERE fragment. Placeholders are written as "?"
// and renumbered by Where. The zero Predicate means "no condition".
type Predicate struct {
	SQL  string
	Args []any
}

func (p Predicate) Empty() bool {
	return p.SQL == ""
}

// DateBetween bounds h.date inclusively on whichever side is set.
func DateBetween(start, end *time.Time) Predicate {
	switch {
	case start != nil && end != nil:
		return Predicate{SQL: "h.date BETWEEN ? AND ?", Args: []any{DateOf(*start), DateOf(*end)}}
	case start != nil:
		return Predicate{SQL: "h.date >= ?", Args: []any{DateOf(*start)}}
	case end != nil:
		return Predicate{SQL: "h.date <= ?", Args: []any{DateOf(*end)}}
	default:
		return Predicate{}
	}
}

// CountryNameEq matches the owning country's name exactly.
func CountryNameEq(name string) Predicate {
	if name == "" {
		return Predicate{}
	}
	return Predicate{SQL: "c.name = ?", Args: []any{name}}
}

// Where ANDs the non-empty predicates into a WHERE clause with $n
// placeholders. It returns an empty clause when nothing applies.
func Where(preds ...Predicate) (string, []any) {
	var clauses []string
	var args []any
	for _, p := range preds {
		if p.Empty() {
			continue
		}
		clause := p.SQL
		for _, a := range p.Args {
			args = append(args, a)
			clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
