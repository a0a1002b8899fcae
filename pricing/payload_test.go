package pricing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-editor/models"
)

func price(v float64) *float64 {
	return &v
}

func TestBuildPricePayload(t *testing.T) {
	t.Run("drops entries without a place", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "5L", Entries: []models.PriceEntry{
				models.NewPriceEntry("All", 100),
				models.NewPriceEntry("", 50),
			}},
		}

		got := BuildPricePayload(priceList)
		assert.Equal(t, models.PricePayload{"5L": {{"All": 100}}}, got)
	})

	t.Run("drops missing and NaN prices but keeps zero and negative", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "1L", Entries: []models.PriceEntry{
				{SelectedKey: "z1", Price: nil},
				{SelectedKey: "z2", Price: price(math.NaN())},
				models.NewPriceEntry("z3", 0),
				models.NewPriceEntry("z4", -5),
			}},
		}

		got := BuildPricePayload(priceList)
		assert.Equal(t, models.PricePayload{"1L": {{"z3": 0}, {"z4": -5}}}, got)
	})

	t.Run("skips groups without volume or entries", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "", Entries: []models.PriceEntry{models.NewPriceEntry("All", 1000)}},
			{Volume: "2L", Entries: nil},
			{Volume: "5L", Entries: []models.PriceEntry{models.NewPriceEntry("All", 10)}},
		}

		got := BuildPricePayload(priceList)
		assert.Equal(t, models.PricePayload{"5L": {{"All": 10}}}, got)
	})

	t.Run("group whose entries are all dropped yields an empty list", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "5L", Entries: []models.PriceEntry{{SelectedKey: ""}}},
		}

		got := BuildPricePayload(priceList)
		require.Contains(t, got, "5L")
		assert.Empty(t, got["5L"])
	})

	t.Run("later group with same volume wins", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "5L", Entries: []models.PriceEntry{models.NewPriceEntry("All", 1)}},
			{Volume: "5L", Entries: []models.PriceEntry{models.NewPriceEntry("All", 2)}},
		}

		got := BuildPricePayload(priceList)
		assert.Equal(t, models.PricePayload{"5L": {{"All": 2}}}, got)
	})

	t.Run("repeated calls give identical output", func(t *testing.T) {
		priceList := []models.VolumeGroup{
			{Volume: "5L", Entries: []models.PriceEntry{
				models.NewPriceEntry("All", 1000),
				models.NewPriceEntry("st-1", 950),
			}},
			{Volume: "1L", Entries: []models.PriceEntry{models.NewPriceEntry("All", 210)}},
		}

		first, err := json.Marshal(BuildPricePayload(priceList))
		require.NoError(t, err)
		second, err := json.Marshal(BuildPricePayload(priceList))
		require.NoError(t, err)
		assert.JSONEq(t, string(first), string(second))
		assert.JSONEq(t, `{"5L":[{"All":1000},{"st-1":950}],"1L":[{"All":210}]}`, string(first))
	})
}
