package repository

import (
	"fmt"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
)

// searchQuery accumulates conditions and their bound arguments. Placeholders
// are numbered by the position of the argument they refer to.
type searchQuery struct {
	where  []string
	having []string
	args   []any
}

// likeEscaper makes a user string match literally inside a LIKE pattern,
// using the default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches s anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// bind appends v and returns its placeholder.
func (q *searchQuery) bind(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// BuildPropertySearch renders the property search for s and limit.
//
// The city matches as a case-insensitive literal substring: % and _ in it
// are escaped. Only fixed column names and operators are written into the SQL; every
// filter value and the limit are returned in args. With no filters the
// query has neither WHERE nor HAVING and args holds only the limit.
func BuildPropertySearch(s model.PropertySearch, limit int) (string, []any) {
	q := &searchQuery{}

	if s.City != "" {
		q.where = append(q.where, "properties.city ILIKE "+q.bind(containsPattern(s.City)))
	}

	if s.OwnerID != 0 {
		q.where = append(q.where, "properties.owner_id = "+q.bind(s.OwnerID))
	}

	minimum, maximum := s.MinimumCents(), s.MaximumCents()
	switch {
	case minimum > 0 && maximum > 0:
		q.where = append(q.where,
			"properties.cost_per_night >= "+q.bind(minimum),
			"properties.cost_per_night <= "+q.bind(maximum),
		)
	case minimum > 0:
		q.where = append(q.where, "properties.cost_per_night >= "+q.bind(minimum))
	case maximum > 0:
		q.where = append(q.where, "properties.cost_per_night <= "+q.bind(maximum))
	}

	if s.MinimumRating != 0 {
		q.having = append(q.having, "avg(property_reviews.rating) >= "+q.bind(s.MinimumRating))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(qualifiedPropertyColumns)
	b.WriteString(", avg(property_reviews.rating) AS average_rating\n")
	b.WriteString("FROM properties\n")
	b.WriteString("JOIN property_reviews ON properties.id = property_reviews.property_id\n")

	if len(q.where) > 0 {
		b.WriteString("WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
		b.WriteString("\n")
	}

	b.WriteString("GROUP BY properties.id\n")

	if len(q.having) > 0 {
		b.WriteString("HAVING ")
		b.WriteString(strings.Join(q.having, " AND "))
		b.WriteString("\n")
	}

	b.WriteString("ORDER BY properties.cost_per_night\n")
	b.WriteString("LIMIT ")
	b.WriteString(q.bind(limit))

	return b.String(), q.args
}
