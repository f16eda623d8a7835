package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	assert.Equal(t, "Bags", Concrete("Bags").String())
	assert.Equal(t, MissingLabel, Missing().String())
	assert.Equal(t, AllLabel, All().String())
}

func TestValue_SentinelsDistinct(t *testing.T) {
	assert.NotEqual(t, Missing(), All())
	assert.NotEqual(t, Missing(), Concrete(""))
	assert.NotEqual(t, Concrete("ALL"), All())

	k1 := GroupKey{{Name: "category", Value: Concrete("ALL")}}
	k2 := GroupKey{{Name: "category", Value: All()}}
	assert.NotEqual(t, k1.Encode(), k2.Encode())
}

func TestGroupKey_EncodeEmbeddedSeparators(t *testing.T) {
	k1 := GroupKey{{Name: "category", Value: Concrete("x\x000y")}, {Name: "subcategory", Value: Concrete("z")}}
	k2 := GroupKey{{Name: "category", Value: Concrete("x")}, {Name: "subcategory", Value: Concrete("y\x000z")}}
	assert.NotEqual(t, k1.Encode(), k2.Encode())

	k3 := GroupKey{{Name: "category", Value: Concrete("a1:b")}, {Name: "subcategory", Value: Missing()}}
	k4 := GroupKey{{Name: "category", Value: Concrete("a")}, {Name: "subcategory", Value: Concrete("b")}}
	assert.NotEqual(t, k3.Encode(), k4.Encode())

	same := GroupKey{{Name: "category", Value: Concrete("x\x000y")}, {Name: "subcategory", Value: Concrete("z")}}
	assert.Equal(t, k1.Encode(), same.Encode())
}

func TestValue_Compare(t *testing.T) {
	assert.Negative(t, Concrete("a").Compare(Concrete("b")))
	assert.Negative(t, Concrete("zzz").Compare(Missing()))
	assert.Negative(t, Missing().Compare(All()))
	assert.Zero(t, All().Compare(All()))
}

func TestGroupKey_Compare(t *testing.T) {
	a := GroupKey{{Name: "c", Value: Concrete("Bags")}, {Name: "s", Value: Concrete("Clutch")}}
	b := GroupKey{{Name: "c", Value: Concrete("Bags")}, {Name: "s", Value: Concrete("Tote")}}
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))

	v, ok := b.Get("s")
	require.True(t, ok)
	assert.Equal(t, Concrete("Tote"), v)
	assert.Equal(t, []string{"c", "s"}, b.Names())
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Product_Name ")
	require.NoError(t, err)
	assert.Equal(t, FieldProductName, f)

	_, err = ParseField("price")
	var ife *InvalidFieldError
	require.ErrorAs(t, err, &ife)

	_, err = ParseFields([]string{"category", "brand"})
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, "brand", ife.Field)
}

func TestRecord_Get(t *testing.T) {
	r := Record{ID: 42, Category: Some("Bags")}
	v, err := r.Get(FieldID)
	require.NoError(t, err)
	assert.Equal(t, Some("42"), v)

	v, err = r.Get(FieldDescription)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, "", v.OrEmpty())
}

func TestRow_MarshalJSONKeepsOrder(t *testing.T) {
	row := Row{
		{Name: "category", Value: Missing()},
		{Name: "count", Value: 3},
		{Name: "pct_of_total", Value: 66.67},
	}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"category":"(missing)","count":3,"pct_of_total":66.67}`, string(data))
	assert.Equal(t, []string{"(missing)", "3", "66.67"}, row.Strings())
}
