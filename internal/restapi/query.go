// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package restapi

import (
	"strconv"
	"strings"
)

// Direction is a PostgREST ordering direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query builds a PostgREST resource path such as
// "/skill_categories?select=*,skills(*)". Parameters keep insertion order
// so the same query always renders to the same string.
type Query struct {
	table  string
	params [][2]string
}

// NewQuery starts a query against a table.
func NewQuery(table string) *Query {
	return &Query{table: table}
}

// Select sets the column list, including embedded resources
// ("*,skills(*)" fetches the one-to-many join in the same request).
func (q *Query) Select(columns string) *Query {
	return q.set("select", columns)
}

// Order sorts by a column.
func (q *Query) Order(column string, dir Direction) *Query {
	return q.set("order", column+"."+string(dir))
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	return q.set("limit", strconv.Itoa(n))
}

// Eq filters rows where column equals value.
func (q *Query) Eq(column, value string) *Query {
	return q.set(column, "eq."+value)
}

// EqID is Eq("id", id) for numeric identities.
func (q *Query) EqID(id int64) *Query {
	return q.Eq("id", strconv.FormatInt(id, 10))
}

// Table returns the table name.
func (q *Query) Table() string {
	return q.table
}

// String renders the path, e.g. "/projects?order=id.asc".
func (q *Query) String() string {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(q.table)
	for i, p := range q.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(escapeValue(p[1]))
	}
	return b.String()
}

// set replaces an existing parameter or appends a new one.
func (q *Query) set(key, value string) *Query {
	for i := range q.params {
		if q.params[i][0] == key {
			q.params[i][1] = value
			return q
		}
	}
	q.params = append(q.params, [2]string{key, value})
	return q
}

// escapeValue percent-encodes characters that would break the query string
// while leaving PostgREST syntax (*,().:) readable.
func escapeValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '&' || c == '#' || c == '+' || c == '%' || c == '=' || c == ' ' || c < 0x20 || c >= 0x7f:
			b.WriteByte('%')
			b.WriteString(strings.ToUpper(strconv.FormatInt(int64(c)|0x100, 16)[1:]))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// TableOf extracts the table name from a path built by Query
// ("/projects?id=eq.7" -> "projects"). Used as a metrics label.
func TableOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "?/"); i >= 0 {
		path = path[:i]
	}
	return path
}
