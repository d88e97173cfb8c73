package query

import (
	"testing"
	"time"

	"xote-events-backend/cmd/xote-events/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(p float64) *float64 { return &p }

func TestAll_IsUnbounded(t *testing.T) {
	q := All()
	assert.Equal(t, Filter{}, q.Filter)
	assert.Nil(t, q.Sort)
	assert.Zero(t, q.Limit)
	assert.True(t, q.Filter.Matches(model.Event{Type: "anything"}))
}

func TestByPayment(t *testing.T) {
	paid := ByPayment(true)
	require.NotNil(t, paid.Filter.Pay)
	assert.True(t, *paid.Filter.Pay)
	assert.True(t, paid.Filter.Matches(model.Event{Pay: true}))
	assert.False(t, paid.Filter.Matches(model.Event{Pay: false}))

	free := ByPayment(false)
	assert.True(t, free.Filter.Matches(model.Event{Pay: false}))
	assert.False(t, free.Filter.Matches(model.Event{Pay: true}))
}

func TestByPrice(t *testing.T) {
	asc := ByPrice(false)
	require.NotNil(t, asc.Sort)
	assert.Equal(t, model.FieldPrice, asc.Sort.Field)
	assert.False(t, asc.Sort.Desc)
	assert.True(t, *asc.Filter.Pay)

	cheap := model.Event{Price: price(10)}
	dear := model.Event{Price: price(50)}
	assert.True(t, asc.Sort.Less(cheap, dear))
	assert.False(t, asc.Sort.Less(dear, cheap))

	desc := ByPrice(true)
	assert.True(t, desc.Sort.Less(dear, cheap))
}

func TestByType_ExactMatch(t *testing.T) {
	q := ByType("workshop")
	assert.True(t, q.Filter.Matches(model.Event{Type: "workshop"}))
	assert.False(t, q.Filter.Matches(model.Event{Type: "Workshop"}))
	assert.False(t, q.Filter.Matches(model.Event{Type: "workshops"}))
}

func TestByDate_Range(t *testing.T) {
	q, err := ByDate("2024-01-01", "2024-01-31", false)
	require.NoError(t, err)

	assert.True(t, q.Filter.Matches(model.Event{Date: day(2024, 1, 15)}))
	assert.True(t, q.Filter.Matches(model.Event{Date: day(2024, 1, 1)}), "start is inclusive")
	assert.True(t, q.Filter.Matches(model.Event{Date: day(2024, 1, 31)}), "end is inclusive")
	assert.False(t, q.Filter.Matches(model.Event{Date: day(2024, 2, 1)}))
	assert.False(t, q.Filter.Matches(model.Event{Date: day(2023, 12, 31)}))

	require.NotNil(t, q.Sort)
	assert.Equal(t, model.FieldDate, q.Sort.Field)
	assert.False(t, q.Sort.Desc)
}

func TestByDate_OpenBounds(t *testing.T) {
	q, err := ByDate("", "", true)
	require.NoError(t, err)
	assert.Nil(t, q.Filter.DateFrom)
	assert.Nil(t, q.Filter.DateTo)
	assert.True(t, q.Sort.Desc)

	q, err = ByDate("15-01-2024", "", false)
	require.NoError(t, err)
	require.NotNil(t, q.Filter.DateFrom)
	assert.True(t, q.Filter.DateFrom.Equal(day(2024, 1, 15)))
	assert.Nil(t, q.Filter.DateTo)
}

func TestByDate_InvalidBounds(t *testing.T) {
	_, err := ByDate("yesterday-ish", "", false)
	assert.True(t, model.IsValidationCode(err, model.InvalidStartDate))

	_, err = ByDate("2024-01-01", "garbage", false)
	assert.True(t, model.IsValidationCode(err, model.InvalidEndDate))
}

func TestRecent_Limit(t *testing.T) {
	tests := []struct {
		name    string
		limit   string
		ceiling int
		want    int
	}{
		{"Absent", "", 100, 10},
		{"Numeric", "3", 100, 3},
		{"Non numeric", "abc", 100, 10},
		{"Zero", "0", 100, 10},
		{"Negative", "-5", 100, 10},
		{"Capped", "5000", 100, 100},
		{"No ceiling", "5000", 0, 5000},
		{"Padded", " 7 ", 100, 7},
		{"Decimal", "2.5", 0, 2},
		{"Numeric prefix", "3abc", 0, 3},
		{"Signed", "+4", 100, 4},
		{"Negative prefix", "-2x", 100, 10},
		{"Suffix only", "abc3", 100, 10},
		{"Overflow is capped", "99999999999999999999999", 100, 100},
		{"Negative overflow", "-99999999999999999999999", 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Recent(tt.limit, tt.ceiling)
			assert.Equal(t, tt.want, q.Limit)
			require.NotNil(t, q.Sort)
			assert.Equal(t, model.FieldCreatedAt, q.Sort.Field)
			assert.True(t, q.Sort.Desc)
		})
	}
}

func TestSort_Less(t *testing.T) {
	older := model.Event{CreatedAt: day(2024, 1, 1), Date: day(2024, 5, 1)}
	newer := model.Event{CreatedAt: day(2024, 2, 1), Date: day(2024, 4, 1)}

	recent := Sort{Field: model.FieldCreatedAt, Desc: true}
	assert.True(t, recent.Less(newer, older))
	assert.False(t, recent.Less(older, newer))

	byDate := Sort{Field: model.FieldDate}
	assert.True(t, byDate.Less(newer, older))

	assert.False(t, recent.Less(older, older), "equal keys are not less")
}

func TestSort_LessPriceNilFirst(t *testing.T) {
	s := Sort{Field: model.FieldPrice}
	assert.True(t, s.Less(model.Event{}, model.Event{Price: price(0)}))
	assert.False(t, s.Less(model.Event{Price: price(0)}, model.Event{}))
	assert.False(t, s.Less(model.Event{}, model.Event{}))
}

func TestFilter_AndCombined(t *testing.T) {
	paid := true
	kind := "festival"
	from := day(2024, 1, 1)
	f := Filter{Pay: &paid, Type: &kind, DateFrom: &from}

	assert.True(t, f.Matches(model.Event{Pay: true, Type: "festival", Date: day(2024, 6, 1)}))
	assert.False(t, f.Matches(model.Event{Pay: false, Type: "festival", Date: day(2024, 6, 1)}))
	assert.False(t, f.Matches(model.Event{Pay: true, Type: "workshop", Date: day(2024, 6, 1)}))
	assert.False(t, f.Matches(model.Event{Pay: true, Type: "festival", Date: day(2023, 6, 1)}))
}
