package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

// populatedState fills every tile with a distinct, fully set value
func populatedState() domain.GameState {
	s := domain.NewGameState(1234, 56)
	for i := range s.Tiles {
		s.Tiles[i] = domain.Tile{
			Crop:                   fmt.Sprintf("crop-%d", i),
			CropPlantedAt:          1700000000000 + int64(i),
			Building:               fmt.Sprintf("building-%d", i),
			BuildingStartedAt:      1700000100000 + int64(i),
			LastProductCollectedAt: 1700000200000 + int64(i),
			Plowed:                 i%2 == 0,
			FertilizedBonus:        i%3 == 0,
		}
	}
	s.Inventory = domain.Inventory{
		Eggs: 1, Milk: 2, GrainPack: 3, Flour: 4, Water: 5, Meal: 6, Toolkit: 7,
		Wheat: 8, Corn: 9, Carrot: 10, Potato: 11, Tomato: 12, Pumpkin: 13, Sunflower: 14,
	}
	s.Stats = domain.Stats{
		CropsPlanted: 21, CropsHarvested: 22, ProductsCollected: 23,
		BuildingsConstructed: 24, ProductsProcessed: 25, MoneyEarned: 26,
	}
	return s
}

// rawDoc unmarshals an encoded document for shape assertions
func rawDoc(t *testing.T, doc string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return m
}

func TestRoundTrip(t *testing.T) {
	t.Run("fully populated state", func(t *testing.T) {
		s := populatedState()

		got, err := Decode(Encode(s))

		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("default tiles decode back to defaults", func(t *testing.T) {
		s := domain.NewGameState(7, 8)
		s.Tiles[5] = domain.Tile{Crop: "wheat", Plowed: true}

		got, err := Decode(Encode(s))

		require.NoError(t, err)
		assert.Equal(t, s, got)
	})
}

func TestEncode_KeyOrder(t *testing.T) {
	doc := Encode(domain.NewGameState(1, 2))

	order := []string{`"money"`, `"xp"`, `"tiles"`, `"inventory"`, `"stats"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(doc, key)
		require.NotEqual(t, -1, idx, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
	assert.True(t, strings.HasPrefix(doc, `{"money":1,"xp":2,"tiles":[[`))
}

func TestEncode_OmissionLaw(t *testing.T) {
	s := domain.NewGameState(0, 0)
	s.Tiles[0] = domain.Tile{Crop: "corn", CropPlantedAt: 99}
	doc := rawDoc(t, Encode(s))

	rows := doc["tiles"].([]interface{})
	first := rows[0].([]interface{})[0].(map[string]interface{})
	second := rows[0].([]interface{})[1].(map[string]interface{})

	assert.Equal(t, "corn", first["crop"])
	assert.Equal(t, float64(99), first["cropPlantedAt"])
	assert.NotContains(t, first, "building")
	assert.NotContains(t, first, "buildingStartedAt")
	assert.NotContains(t, first, "lastProductCollectedAt")

	// An all-default tile only carries the two booleans
	assert.Equal(t, map[string]interface{}{"plowed": false, "fertilizedBonus": false}, second)

	// And decoding a tile without the optional keys yields defaults
	got, err := Decode(`{"tiles":[[{"plowed":true}]]}`)
	require.NoError(t, err)
	require.Len(t, got.Tiles, 1)
	assert.Equal(t, domain.Tile{Plowed: true}, got.Tiles[0])
}

func TestEncode_AlwaysWritesCounters(t *testing.T) {
	doc := rawDoc(t, Encode(domain.GameState{}))

	inv := doc["inventory"].(map[string]interface{})
	for _, key := range []string{"eggs", "milk", "grain_pack", "flour", "water", "meal", "toolkit",
		"wheat", "corn", "carrot", "potato", "tomato", "pumpkin", "sunflower"} {
		assert.Contains(t, inv, key)
	}
	stats := doc["stats"].(map[string]interface{})
	for _, key := range []string{"cropsPlanted", "cropsHarvested", "productsCollected",
		"buildingsConstructed", "productsProcessed", "moneyEarned"} {
		assert.Contains(t, stats, key)
	}
}

func TestEncode_GridShape(t *testing.T) {
	tests := []struct {
		name      string
		tiles     int
		wantCrops int
	}{
		{"no tiles pads", 0, 0},
		{"399 tiles pads", 399, 399},
		{"400 tiles exact", 400, 400},
		{"401 tiles truncates", 401, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.GameState{Tiles: make([]domain.Tile, tt.tiles)}
			for i := range s.Tiles {
				s.Tiles[i].Crop = "wheat"
			}

			doc := rawDoc(t, Encode(s))
			rows := doc["tiles"].([]interface{})
			require.Len(t, rows, domain.GridHeight)

			crops := 0
			for _, r := range rows {
				cells := r.([]interface{})
				require.Len(t, cells, domain.GridWidth)
				for _, c := range cells {
					if _, ok := c.(map[string]interface{})["crop"]; ok {
						crops++
					}
				}
			}
			assert.Equal(t, tt.wantCrops, crops)
		})
	}
}

func TestMakeMinimal(t *testing.T) {
	doc := MakeMinimal(100, 5)

	t.Run("decodes to a default state", func(t *testing.T) {
		s, err := Decode(doc)

		require.NoError(t, err)
		assert.Equal(t, 100, s.Money)
		assert.Equal(t, 5, s.XP)
		require.Len(t, s.Tiles, domain.TileCount)
		for _, tile := range s.Tiles {
			assert.Equal(t, domain.Tile{}, tile)
		}
		assert.Equal(t, domain.Inventory{}, s.Inventory)
		assert.Equal(t, domain.Stats{}, s.Stats)
	})

	t.Run("writes quests and explicit nulls", func(t *testing.T) {
		m := rawDoc(t, doc)

		assert.Equal(t, []interface{}{}, m["quests"])
		cell := m["tiles"].([]interface{})[0].([]interface{})[0].(map[string]interface{})
		for _, key := range []string{"crop", "cropPlantedAt", "building", "buildingStartedAt", "lastProductCollectedAt"} {
			v, ok := cell[key]
			assert.True(t, ok, "key %s should be present", key)
			assert.Nil(t, v)
		}
		assert.Equal(t, false, cell["plowed"])
		assert.Equal(t, false, cell["fertilizedBonus"])
	})

	t.Run("encode never writes quests", func(t *testing.T) {
		assert.NotContains(t, Encode(domain.NewGameState(100, 5)), "quests")
	})
}

func TestDecode_ParseFailures(t *testing.T) {
	for _, input := range []string{"not json", "42", `"text"`, "[]", "null", "", `{"money":1} trailing`} {
		t.Run(input, func(t *testing.T) {
			_, err := Decode(input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)
		})
	}
}

func TestDecode_EmptyObject(t *testing.T) {
	s, err := Decode("{}")

	require.NoError(t, err)
	assert.Equal(t, domain.GameState{}, s)
}

func TestDecode_TolerantFields(t *testing.T) {
	doc := `{
		"money": "lots",
		"xp": 12.9,
		"tiles": [[{
			"crop": 5,
			"cropPlantedAt": "yesterday",
			"building": "mill",
			"buildingStartedAt": null,
			"lastProductCollectedAt": 77,
			"plowed": "yes",
			"fertilizedBonus": true
		}]],
		"inventory": {"eggs": 3, "milk": "two", "flour": -1},
		"stats": "broken"
	}`

	s, err := Decode(doc)

	require.NoError(t, err)
	assert.Equal(t, 0, s.Money)
	assert.Equal(t, 12, s.XP)
	require.Len(t, s.Tiles, 1)
	assert.Equal(t, domain.Tile{
		Building:               "mill",
		LastProductCollectedAt: 77,
		FertilizedBonus:        true,
	}, s.Tiles[0])
	assert.Equal(t, domain.Inventory{Eggs: 3, Flour: -1}, s.Inventory)
	assert.Equal(t, domain.Stats{}, s.Stats)
}

func TestDecode_LargeTimestamps(t *testing.T) {
	s, err := Decode(`{"tiles":[[{"cropPlantedAt":1735689600123,"buildingStartedAt":1.5e3}]]}`)

	require.NoError(t, err)
	require.Len(t, s.Tiles, 1)
	assert.Equal(t, int64(1735689600123), s.Tiles[0].CropPlantedAt)
	assert.Equal(t, int64(1500), s.Tiles[0].BuildingStartedAt)
}

func TestDecode_SparseGrid(t *testing.T) {
	t.Run("extra rows and columns are dropped", func(t *testing.T) {
		rows := make([][]domain.Tile, 25)
		for y := range rows {
			rows[y] = make([]domain.Tile, 25)
		}
		data, err := json.Marshal(map[string]interface{}{"tiles": rows})
		require.NoError(t, err)

		s, err := Decode(string(data))

		require.NoError(t, err)
		assert.Len(t, s.Tiles, domain.TileCount)
	})

	t.Run("skipped rows and cells shift later tiles", func(t *testing.T) {
		doc := `{"tiles":[
			"not a row",
			[{"crop":"a"}, null, {"crop":"b"}],
			[{"crop":"c"}]
		]}`

		s, err := Decode(doc)

		require.NoError(t, err)
		require.Len(t, s.Tiles, 3)
		assert.Equal(t, "a", s.Tiles[0].Crop)
		assert.Equal(t, "b", s.Tiles[1].Crop)
		assert.Equal(t, "c", s.Tiles[2].Crop)
	})

	t.Run("short decode pads again on encode", func(t *testing.T) {
		s, err := Decode(`{"tiles":[[{"crop":"a"}]]}`)
		require.NoError(t, err)

		rows := rawDoc(t, Encode(s))["tiles"].([]interface{})
		assert.Len(t, rows, domain.GridHeight)
		assert.Len(t, rows[19].([]interface{}), domain.GridWidth)
	})
}

func TestEncode_DoesNotEscapeHTML(t *testing.T) {
	s := domain.GameState{Tiles: []domain.Tile{{Crop: "salt & pepper"}}}
	assert.Contains(t, Encode(s), `"crop":"salt & pepper"`)
}
