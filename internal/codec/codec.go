// Package codec converts between domain.GameState and the canonical JSON
// document the backend stores.
//
// Encoding is strict about shape (always a 20x20 tile grid, fixed key order,
// omitted empty fields) and never fails. Decoding is tolerant: only invalid
// JSON or a non-object root is an error; every other field falls back to its
// default independently.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

// wireState fixes the key order of an encoded document
type wireState struct {
	Money     int              `json:"money"`
	XP        int              `json:"xp"`
	Tiles     [][]domain.Tile  `json:"tiles"`
	Inventory domain.Inventory `json:"inventory"`
	Stats     domain.Stats     `json:"stats"`
}

// Encode renders state as canonical JSON.
// Missing tiles are padded with defaults and tiles past TileCount are dropped.
func Encode(state domain.GameState) string {
	w := wireState{
		Money:     state.Money,
		XP:        state.XP,
		Tiles:     grid(state.Tiles),
		Inventory: state.Inventory,
		Stats:     state.Stats,
	}
	return marshal(w)
}

// grid reshapes a flat tile slice into GridHeight rows of GridWidth cells
func grid(flat []domain.Tile) [][]domain.Tile {
	rows := make([][]domain.Tile, domain.GridHeight)
	idx := 0
	for y := 0; y < domain.GridHeight; y++ {
		row := make([]domain.Tile, domain.GridWidth)
		for x := 0; x < domain.GridWidth; x++ {
			if idx < len(flat) {
				row[x] = flat[idx]
			}
			idx++
		}
		rows[y] = row
	}
	return rows
}

// Decode parses a state document.
// The returned error wraps domain.ErrParse when data is not valid JSON or its
// root is not an object. No other condition fails the decode.
func Decode(data string) (domain.GameState, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return domain.GameState{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.GameState{}, fmt.Errorf("%w: trailing data after document", domain.ErrParse)
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return domain.GameState{}, fmt.Errorf("%w: root is not an object", domain.ErrParse)
	}

	var state domain.GameState
	state.Money, _ = readInt(obj, keyMoney)
	state.XP, _ = readInt(obj, keyXP)
	state.Tiles = decodeTiles(obj)

	if inv, ok := readObject(obj, keyInventory); ok {
		readCounters(inv, state.Inventory.Counters())
	}
	if st, ok := readObject(obj, keyStats); ok {
		readCounters(st, state.Stats.Counters())
	}

	return state, nil
}

// decodeTiles appends tiles in row-major encounter order.
// Non-array rows and non-object cells are skipped without padding, so a sparse
// source grid shifts later tiles toward the front.
func decodeTiles(obj map[string]interface{}) []domain.Tile {
	rows, ok := readArray(obj, keyTiles)
	if !ok {
		return nil
	}

	tiles := make([]domain.Tile, 0, domain.TileCount)
	for y := 0; y < len(rows) && y < domain.GridHeight; y++ {
		cols, ok := rows[y].([]interface{})
		if !ok {
			continue
		}
		for x := 0; x < len(cols) && x < domain.GridWidth; x++ {
			cell, ok := cols[x].(map[string]interface{})
			if !ok {
				continue
			}
			tiles = append(tiles, decodeTile(cell))
		}
	}
	return tiles
}

func decodeTile(cell map[string]interface{}) domain.Tile {
	var t domain.Tile
	t.Crop, _ = readString(cell, keyCrop)
	t.CropPlantedAt, _ = readInt64(cell, keyCropPlantedAt)
	t.Building, _ = readString(cell, keyBuilding)
	t.BuildingStartedAt, _ = readInt64(cell, keyBuildingStartedAt)
	t.LastProductCollectedAt, _ = readInt64(cell, keyLastProductCollectedAt)
	t.Plowed, _ = readBool(cell, keyPlowed)
	t.FertilizedBonus, _ = readBool(cell, keyFertilizedBonus)
	return t
}

// minimalTile writes every optional key as an explicit null
type minimalTile struct {
	Crop                   *string `json:"crop"`
	CropPlantedAt          *int64  `json:"cropPlantedAt"`
	Building               *string `json:"building"`
	BuildingStartedAt      *int64  `json:"buildingStartedAt"`
	LastProductCollectedAt *int64  `json:"lastProductCollectedAt"`
	Plowed                 bool    `json:"plowed"`
	FertilizedBonus        bool    `json:"fertilizedBonus"`
}

type minimalState struct {
	Money     int              `json:"money"`
	XP        int              `json:"xp"`
	Tiles     [][]minimalTile  `json:"tiles"`
	Inventory domain.Inventory `json:"inventory"`
	Stats     domain.Stats     `json:"stats"`
	Quests    []interface{}    `json:"quests"`
}

// MakeMinimal returns a fresh state document with the given money and xp.
// It is the only document that carries the (always empty) quests array the
// web frontend expects.
func MakeMinimal(money, xp int) string {
	rows := make([][]minimalTile, domain.GridHeight)
	for y := range rows {
		rows[y] = make([]minimalTile, domain.GridWidth)
	}
	return marshal(minimalState{
		Money:  money,
		XP:     xp,
		Tiles:  rows,
		Quests: []interface{}{},
	})
}

func marshal(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// Only reachable through a programming error in the wire types
		logger.Error("Failed to encode state", "error", err)
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
