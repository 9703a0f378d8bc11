package codec

import (
	"encoding/json"
	"math"
)

// Document keys
const (
	keyMoney     = "money"
	keyXP        = "xp"
	keyTiles     = "tiles"
	keyInventory = "inventory"
	keyStats     = "stats"

	keyCrop                   = "crop"
	keyCropPlantedAt          = "cropPlantedAt"
	keyBuilding               = "building"
	keyBuildingStartedAt      = "buildingStartedAt"
	keyLastProductCollectedAt = "lastProductCollectedAt"
	keyPlowed                 = "plowed"
	keyFertilizedBonus        = "fertilizedBonus"
)

// The read helpers below return the zero value and false when the key is
// missing or holds a value of the wrong JSON type.

func readInt64(obj map[string]interface{}, key string) (int64, bool) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	// Fractions truncate toward zero
	return int64(f), true
}

func readInt(obj map[string]interface{}, key string) (int, bool) {
	v, ok := readInt64(obj, key)
	if !ok {
		return 0, false
	}
	switch {
	case v > math.MaxInt:
		return math.MaxInt, true
	case v < math.MinInt:
		return math.MinInt, true
	}
	return int(v), true
}

func readString(obj map[string]interface{}, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

func readBool(obj map[string]interface{}, key string) (bool, bool) {
	b, ok := obj[key].(bool)
	return b, ok
}

func readObject(obj map[string]interface{}, key string) (map[string]interface{}, bool) {
	m, ok := obj[key].(map[string]interface{})
	return m, ok
}

func readArray(obj map[string]interface{}, key string) ([]interface{}, bool) {
	a, ok := obj[key].([]interface{})
	return a, ok
}

// readCounters fills each target from obj, leaving missing or malformed
// counters untouched
func readCounters(obj map[string]interface{}, targets map[string]*int) {
	for key, dst := range targets {
		if v, ok := readInt(obj, key); ok {
			*dst = v
		}
	}
}
