package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

func TestGenerate_ReturnsIndependentCopies(t *testing.T) {
	a := Generate()
	a.Destinations[0].Name = "changed"

	b := Generate()
	assert.Equal(t, "Gangaramaya Temple", b.Destinations[0].Name)
}

func TestDocuments(t *testing.T) {
	d := Generate()
	docs := d.Documents()

	total := 0
	for _, n := range d.Counts() {
		total += n
	}
	require.Len(t, docs, total)

	seen := make(map[string]bool, len(docs))
	byCategory := make(map[types.Category]int)
	for _, doc := range docs {
		assert.False(t, seen[doc.SourceID], "duplicate source id %s", doc.SourceID)
		seen[doc.SourceID] = true
		assert.NotEmpty(t, doc.Content)
		byCategory[doc.Category]++
	}
	assert.Equal(t, len(d.Destinations), byCategory[types.CategoryDestination])
	assert.Equal(t, len(d.PracticalInfo), byCategory[types.CategoryPractical])

	assert.True(t, seen["destination-sigiriya-rock-fortress"])
	assert.True(t, seen["hotel-98-acres-resort-and-spa"])
}

func TestDocuments_SigiriyaContent(t *testing.T) {
	for _, doc := range Generate().Documents() {
		if doc.Title != "Sigiriya Rock Fortress" {
			continue
		}
		assert.Contains(t, doc.Content, "Matale district, Central Province")
		assert.Contains(t, doc.Content, "Entrance fee: LKR 4500")
		assert.Equal(t, "Central", doc.Metadata["province"])
		return
	}
	t.Fatal("Sigiriya document not found")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "adam-s-peak-sri-pada", slug("Adam's Peak (Sri Pada)"))
	assert.Equal(t, "upali-s-by-nawaloka", slug("Upali's by Nawaloka"))
	assert.Equal(t, "", slug("!!"))
}

func TestExportAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := Generate()

	paths, err := d.Export(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 1+len(d.Counts()))

	loaded, err := Load(filepath.Join(dir, CompleteFile))
	require.NoError(t, err)
	assert.Equal(t, d, loaded)

	f, err := os.Open(filepath.Join(dir, "srilanka_hotels.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(d.Hotels)+1)
	assert.Equal(t, "star_rating", records[0][4])
	assert.Equal(t, "Shangri-La Hotel Colombo", records[1][0])
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse dataset")
}
