package table

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanicdash/internal/models"
)

func fixture(n int) []models.Passenger {
	records := make([]models.Passenger, n)
	for i := range records {
		sex := models.SexMale
		if i%2 == 1 {
			sex = models.SexFemale
		}
		records[i] = models.Passenger{
			Class:    i%3 + 1,
			Survived: i % 2,
			Sex:      sex,
			Name:     fmt.Sprintf("Passenger, Mr. Number%03d", i),
		}
	}
	return records
}

func TestFilterMatch(t *testing.T) {
	p := models.Passenger{Class: 2, Survived: 1, Sex: models.SexFemale, Name: "Allen, Miss. Elisabeth Walton"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "no filter", filter: Filter{}, want: true},
		{name: "sex match", filter: Filter{Sex: models.SexFemale}, want: true},
		{name: "sex mismatch", filter: Filter{Sex: models.SexMale}, want: false},
		{name: "survived yes", filter: Filter{Survived: SurvivedYes}, want: true},
		{name: "survived no", filter: Filter{Survived: SurvivedNo}, want: false},
		{name: "class match", filter: Filter{Class: "2"}, want: true},
		{name: "class mismatch", filter: Filter{Class: "1"}, want: false},
		{name: "name case insensitive", filter: Filter{Name: "ELISABETH"}, want: true},
		{name: "name substring", filter: Filter{Name: "n, miss"}, want: true},
		{name: "name mismatch", filter: Filter{Name: "walker"}, want: false},
		{name: "all combined", filter: Filter{Sex: models.SexFemale, Survived: SurvivedYes, Class: "2", Name: "allen"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(p))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	records := fixture(80)
	f := Filter{Sex: models.SexMale, Class: "1"}

	once := Apply(records, f)
	twice := Apply(once, f)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Apply is not idempotent (-once +twice):\n%s", diff)
	}
	for _, p := range once {
		assert.Equal(t, models.SexMale, p.Sex)
		assert.Equal(t, 1, p.Class)
	}
}

func TestViewPagination(t *testing.T) {
	v := NewView(fixture(60))

	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 3, v.TotalPages())
	assert.Len(t, v.Rows(), PageSize)
	assert.False(t, v.HasPrev())

	v.Prev()
	assert.Equal(t, 1, v.Page(), "prev on first page is a no-op")

	v.Next()
	v.Next()
	assert.Equal(t, 3, v.Page())
	assert.Len(t, v.Rows(), 10)
	assert.False(t, v.HasNext())

	v.Next()
	assert.Equal(t, 3, v.Page(), "next on last page is a no-op")
	assert.Equal(t, "Passenger, Mr. Number050", v.Rows()[0].Name)
}

func TestViewGoToClamps(t *testing.T) {
	v := NewView(fixture(30))

	v.GoTo(99)
	assert.Equal(t, 2, v.Page())

	v.GoTo(-3)
	assert.Equal(t, 1, v.Page())
}

func TestViewEmpty(t *testing.T) {
	v := NewView(nil)

	assert.Equal(t, 1, v.TotalPages())
	assert.Empty(t, v.Rows())

	v.Next()
	assert.Equal(t, 1, v.Page())
}

func TestViewFilterChangeResetsPage(t *testing.T) {
	v := NewView(fixture(100))
	v.GoTo(3)
	require.Equal(t, 3, v.Page())

	v.SetFilter(Filter{Survived: SurvivedYes})

	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 50, v.Matches())
	assert.Equal(t, 2, v.TotalPages())
}

func TestViewSetSourceKeepsPageInBounds(t *testing.T) {
	v := NewView(fixture(100))
	v.GoTo(4)

	v.SetSource(fixture(30))

	assert.Equal(t, 2, v.Page())
}

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{
		"sex":      {"female"},
		"survived": {"maybe"},
		"pclass":   {"4"},
		"q":        {"allen"},
	}

	f := FilterFromQuery(q)

	assert.Equal(t, Filter{Sex: models.SexFemale, Name: "allen"}, f)
	assert.True(t, f.Active())
	assert.Equal(t, f, FilterFromQuery(f.Query()))
}

func TestPageQuery(t *testing.T) {
	v := NewView(fixture(10))
	v.SetFilter(Filter{Class: "3"})

	values, err := url.ParseQuery(v.PageQuery(2))
	require.NoError(t, err)
	assert.Equal(t, "3", values.Get("pclass"))
	assert.Equal(t, "2", values.Get("page"))
}
