package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/aggregate"
	"catalog/internal/domain"
	"catalog/internal/store"
)

func catalogTable() *store.Table {
	return store.Load([]domain.Record{
		{ID: 3, Category: domain.Some("Bags"), Description: domain.Some("abcd")},
		{ID: 1, Category: domain.Some("Bags"), Description: domain.Some("abcdefgh")},
		{ID: 2, Category: domain.Some("Bags")},
		{ID: 4, Category: domain.Some("Shoes"), Description: domain.Some("éé")},
	})
}

func TestDescribe_ByCategory(t *testing.T) {
	cat, err := aggregate.FieldDimension(domain.FieldCategory)
	require.NoError(t, err)

	got, err := Describe(catalogTable(), domain.FieldDescription, cat)
	require.NoError(t, err)
	require.Len(t, got, 2)

	bags := got[0]
	assert.Equal(t, domain.Concrete("Bags"), bags.Key[0].Value)
	assert.Equal(t, 3, bags.Records)
	assert.Equal(t, 2, bags.Present)
	assert.Equal(t, 6.0, bags.Mean)
	assert.Equal(t, 6.0, bags.Median)
	assert.Equal(t, 8.0, bags.P90)
	assert.Equal(t, 4.0, bags.Min)
	assert.Equal(t, 8.0, bags.Max)

	shoes := got[1]
	assert.Equal(t, 1, shoes.Present)
	assert.Equal(t, 2.0, shoes.Mean, "lengths are counted in runes")
}

func TestDescribe_WholeTable(t *testing.T) {
	got, err := Describe(catalogTable(), domain.FieldDescription)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Records)
	assert.Equal(t, 3, got[0].Present)
	assert.Equal(t, 4.67, got[0].Mean)
	assert.Len(t, got[0].Row(), 7)
}

func TestDescribe_NoText(t *testing.T) {
	tbl := store.Load([]domain.Record{{ID: 1}})
	got, err := Describe(tbl, domain.FieldDescription)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Present)
	assert.Zero(t, got[0].Mean)
}

func TestDescribe_InvalidField(t *testing.T) {
	_, err := Describe(catalogTable(), "notes")
	var ife *domain.InvalidFieldError
	assert.ErrorAs(t, err, &ife)
}

func TestLongest(t *testing.T) {
	tbl := store.Load([]domain.Record{
		{ID: 9, Description: domain.Some("four")},
		{ID: 2, Description: domain.Some("a much longer text")},
		{ID: 5, Description: domain.Some("same")},
		{ID: 1},
	})
	got, err := Longest(tbl, domain.FieldDescription, 2)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{ID: 2, Length: 18, Text: "a much longer text"},
		{ID: 5, Length: 4, Text: "same"},
	}, got)

	all, err := Longest(tbl, domain.FieldDescription, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
