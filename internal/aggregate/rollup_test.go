package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain"
)

func TestRollup_TwoDimensions(t *testing.T) {
	tbl := table([2]string{"Bags", "Tote"}, [2]string{"Bags", "Clutch"})
	rows, err := Rollup(tbl, domain.FieldCategory, domain.FieldSubcategory)
	require.NoError(t, err)

	want := []RollupRow{
		{Key: key("category", "Bags", "subcategory", "Clutch"), Count: 1, Level: 0},
		{Key: key("category", "Bags", "subcategory", "Tote"), Count: 1, Level: 0},
		{Key: key("category", "Bags", "subcategory", domain.AllLabel), Count: 2, Level: 1},
		{Key: key("category", domain.AllLabel, "subcategory", domain.AllLabel), Count: 2, Level: 2},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rollup mismatch (-want +got):\n%s", diff)
	}
}

func TestRollup_MissingDistinctFromAll(t *testing.T) {
	tbl := table([2]string{"", "Tote"}, [2]string{"", ""}, [2]string{"Bags", ""})
	rows, err := Rollup(tbl, domain.FieldCategory, domain.FieldSubcategory)
	require.NoError(t, err)

	want := []RollupRow{
		{Key: key("category", "Bags", "subcategory", domain.MissingLabel), Count: 1, Level: 0},
		{Key: key("category", domain.MissingLabel, "subcategory", "Tote"), Count: 1, Level: 0},
		{Key: key("category", domain.MissingLabel, "subcategory", domain.MissingLabel), Count: 1, Level: 0},
		{Key: key("category", "Bags", "subcategory", domain.AllLabel), Count: 1, Level: 1},
		{Key: key("category", domain.MissingLabel, "subcategory", domain.AllLabel), Count: 2, Level: 1},
		{Key: key("category", domain.AllLabel, "subcategory", domain.AllLabel), Count: 3, Level: 2},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rollup mismatch (-want +got):\n%s", diff)
	}

	row := rows[4].Row()
	assert.Equal(t, "(missing)", domain.FormatValue(row[0].Value))
	assert.Equal(t, "ALL", domain.FormatValue(row[1].Value))
}

func TestRollup_LevelsSumToParent(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		tbl := randomTable(seed, 300)
		rows, err := Rollup(tbl, domain.FieldCategory, domain.FieldSubcategory)
		require.NoError(t, err)

		detailByCat := map[string]int{}
		subtotalByCat := map[string]int{}
		subtotalSum, grand, grandRows := 0, 0, 0
		prevLevel := 0
		for _, r := range rows {
			require.GreaterOrEqual(t, r.Level, prevLevel, "rows ordered by level")
			prevLevel = r.Level
			cat, _ := r.Key.Get("category")
			switch r.Level {
			case 0:
				detailByCat[cat.String()] += r.Count
			case 1:
				subtotalByCat[cat.String()] = r.Count
				subtotalSum += r.Count
			case 2:
				grand = r.Count
				grandRows++
			}
		}
		assert.Equal(t, 1, grandRows)
		assert.Equal(t, detailByCat, subtotalByCat)
		assert.Equal(t, grand, subtotalSum)
		assert.Equal(t, tbl.Len(), grand)
	}
}

func TestRollup_EmptyTable(t *testing.T) {
	rows, err := Rollup(table(), domain.FieldCategory, domain.FieldSubcategory)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Level)
	assert.Equal(t, 0, rows[0].Count)
}

func TestRollup_ThreeDimensionsLevelCount(t *testing.T) {
	tbl := table([2]string{"Bags", "Tote"})
	rows, err := Rollup(tbl, domain.FieldCategory, domain.FieldSubcategory, domain.FieldProductName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for i, r := range rows {
		assert.Equal(t, i, r.Level)
		assert.Equal(t, 1, r.Count)
	}
}

func TestRollup_InvalidField(t *testing.T) {
	_, err := Rollup(table(), domain.FieldCategory, "brand")
	var ife *domain.InvalidFieldError
	assert.ErrorAs(t, err, &ife)
}
