// Package query turns request parameters into storage-neutral
// (filter, sort, limit) triples over the event collection.
package query

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"xote-events-backend/cmd/xote-events/model"
)

const DefaultRecentLimit = 10

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// Filter constraints are AND-combined. Nil fields do not constrain.
type Filter struct {
	Pay      *bool
	Type     *string
	DateFrom *time.Time
	DateTo   *time.Time
}

type Sort struct {
	Field string
	Desc  bool
}

type Query struct {
	Filter Filter
	Sort   *Sort
	// Limit of 0 means unbounded.
	Limit int
}

func All() Query {
	return Query{}
}

func ByPayment(paid bool) Query {
	return Query{Filter: Filter{Pay: &paid}}
}

// ByPrice lists paid events ordered by price.
func ByPrice(desc bool) Query {
	q := ByPayment(true)
	q.Sort = &Sort{Field: model.FieldPrice, Desc: desc}
	return q
}

func ByType(eventType string) Query {
	return Query{Filter: Filter{Type: &eventType}}
}

// ByDate orders events by date, optionally bounded by start and end
// (both inclusive). Empty bounds leave that side open.
func ByDate(start, end string, desc bool) (Query, error) {
	q := Query{Sort: &Sort{Field: model.FieldDate, Desc: desc}}

	if start != "" {
		from, err := model.ParseBoundDate(start)
		if err != nil {
			return Query{}, &model.ValidationError{
				Code:    model.InvalidStartDate,
				Field:   "startDate",
				Message: "invalid start date",
			}
		}
		q.Filter.DateFrom = &from
	}

	if end != "" {
		to, err := model.ParseBoundDate(end)
		if err != nil {
			return Query{}, &model.ValidationError{
				Code:    model.InvalidEndDate,
				Field:   "endDate",
				Message: "invalid end date",
			}
		}
		q.Filter.DateTo = &to
	}

	return q, nil
}

// Recent lists the newest events first. limit is read from its leading
// integer ("3abc" and "2.5" give 3 and 2). It falls back to
// DefaultRecentLimit when absent, non-numeric or not positive, and is
// capped at ceiling when ceiling > 0.
func Recent(limit string, ceiling int) Query {
	digits := leadingInt.FindString(strings.TrimSpace(limit))
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) && digits[0] != '-' {
		n, err = math.MaxInt, nil
	}
	if err != nil || n <= 0 {
		n = DefaultRecentLimit
	}
	if ceiling > 0 && n > ceiling {
		n = ceiling
	}

	return Query{
		Sort:  &Sort{Field: model.FieldCreatedAt, Desc: true},
		Limit: n,
	}
}

func (f Filter) Matches(e model.Event) bool {
	if f.Pay != nil && e.Pay != *f.Pay {
		return false
	}
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Less reports whether a sorts before b. Events without a price sort
// before priced ones in ascending order.
func (s Sort) Less(a, b model.Event) bool {
	var cmp int
	switch s.Field {
	case model.FieldPrice:
		cmp = comparePrice(a.Price, b.Price)
	case model.FieldDate:
		cmp = a.Date.Compare(b.Date)
	case model.FieldCreatedAt:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}

	if s.Desc {
		return cmp > 0
	}
	return cmp < 0
}

func comparePrice(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
