// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"strings"
	"time"
)

// Query builds a ServiceNow encoded query: conditions joined with "^",
// alternatives with "^OR", ordering with "^ORDERBY". The zero value is
// an empty query (matches everything).
//
//	q := servicenow.NewQuery().
//	    Eq("assignment_group", groupID).
//	    Lt("incident_state", "6").
//	    OrderByDesc("sys_created_on")
//	// assignment_group=...^incident_state<6^ORDERBYDESCsys_created_on
type Query struct {
	terms    []string
	ordering []string
}

// NewQuery returns an empty query.
func NewQuery() Query { return Query{} }

// Eq adds an equality condition.
func (q Query) Eq(field, value string) Query {
	return q.raw(field + "=" + value)
}

// Ne adds an inequality condition.
func (q Query) Ne(field, value string) Query {
	return q.raw(field + "!=" + value)
}

// Lt adds a less-than condition.
func (q Query) Lt(field, value string) Query {
	return q.raw(field + "<" + value)
}

// Gte adds a greater-or-equal condition.
func (q Query) Gte(field, value string) Query {
	return q.raw(field + ">=" + value)
}

// IsEmpty adds an ISEMPTY condition (unset reference fields).
func (q Query) IsEmpty(field string) Query {
	return q.raw(field + "ISEMPTY")
}

// OrEq adds an equality alternative to the preceding condition.
// Calling it on an empty query is a programming error; the instance
// would reject the leading ^OR.
func (q Query) OrEq(field, value string) Query {
	return q.rawOr(field + "=" + value)
}

// Before adds a created-before condition. ServiceNow expects timestamps
// in instance-local "2006-01-02 15:04:05" format; the caller is
// responsible for timezone policy (the CLI passes UTC).
func (q Query) Before(field string, t time.Time) Query {
	return q.raw(field + "<" + t.Format("2006-01-02 15:04:05"))
}

// OrderBy appends ascending ordering on a field.
func (q Query) OrderBy(field string) Query {
	clone := q.clone()
	clone.ordering = append(clone.ordering, "ORDERBY"+field)
	return clone
}

// OrderByDesc appends descending ordering on a field.
func (q Query) OrderByDesc(field string) Query {
	clone := q.clone()
	clone.ordering = append(clone.ordering, "ORDERBYDESC"+field)
	return clone
}

// Append joins another query's conditions onto this one with AND
// semantics. Ordering terms from both are preserved in order.
func (q Query) Append(other Query) Query {
	clone := q.clone()
	clone.terms = append(clone.terms, other.terms...)
	clone.ordering = append(clone.ordering, other.ordering...)
	return clone
}

// IsZero reports whether the query has no conditions and no ordering.
func (q Query) IsZero() bool {
	return len(q.terms) == 0 && len(q.ordering) == 0
}

// Encode renders the encoded-query string for sysparm_query.
func (q Query) Encode() string {
	parts := make([]string, 0, len(q.terms)+len(q.ordering))
	parts = append(parts, q.terms...)
	parts = append(parts, q.ordering...)
	return strings.Join(parts, "^")
}

func (q Query) raw(term string) Query {
	clone := q.clone()
	clone.terms = append(clone.terms, term)
	return clone
}

func (q Query) rawOr(term string) Query {
	clone := q.clone()
	clone.terms = append(clone.terms, "OR"+term)
	return clone
}

// clone copies the query so the builder methods never alias backing
// arrays between derived queries.
func (q Query) clone() Query {
	return Query{
		terms:    append([]string(nil), q.terms...),
		ordering: append([]string(nil), q.ordering...),
	}
}
