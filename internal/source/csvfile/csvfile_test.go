package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain"
)

func TestRead(t *testing.T) {
	data := "ID,Category,subcategory,product_name,description,price\n" +
		"1,Bags,Tote,Tote Bag,\"Roomy, leather tote\",99\n" +
		"2,,Clutch,Clutch,,10\n"
	records, err := Read(context.Background(), strings.NewReader(data), "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{
		{ID: 1, Category: domain.Some("Bags"), Subcategory: domain.Some("Tote"), ProductName: domain.Some("Tote Bag"), Description: domain.Some("Roomy, leather tote")},
		{ID: 2, Subcategory: domain.Some("Clutch"), ProductName: domain.Some("Clutch")},
	}, records)
}

func TestRead_MissingColumnsAreAbsent(t *testing.T) {
	records, err := Read(context.Background(), strings.NewReader("id;category\n7;Shoes\n8\n"), ";")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.Some("Shoes"), records[0].Category)
	assert.False(t, records[0].Description.Valid)
	assert.False(t, records[1].Category.Valid)
}

func TestRead_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := Read(ctx, strings.NewReader(""), "")
	assert.Error(t, err)

	_, err = Read(ctx, strings.NewReader("category\nBags\n"), "")
	assert.ErrorContains(t, err, "no id column")

	_, err = Read(ctx, strings.NewReader("id\nabc\n"), "")
	assert.ErrorContains(t, err, "line 2")
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,product_name\n3,Scarf\n"), 0o644))

	records, err := New(Config{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{{ID: 3, ProductName: domain.Some("Scarf")}}, records)

	_, err = New(Config{Path: filepath.Join(t.TempDir(), "missing.csv")}).Load(context.Background())
	assert.Error(t, err)
}
