package domain

// Tile is one cell of the farm grid.
// Empty strings and zero timestamps mean "unset".
type Tile struct {
	Crop                   string `json:"crop,omitempty"`
	CropPlantedAt          int64  `json:"cropPlantedAt,omitempty"`
	Building               string `json:"building,omitempty"`
	BuildingStartedAt      int64  `json:"buildingStartedAt,omitempty"`
	LastProductCollectedAt int64  `json:"lastProductCollectedAt,omitempty"`
	Plowed                 bool   `json:"plowed"`
	FertilizedBonus        bool   `json:"fertilizedBonus"`
}

// IsEmpty reports whether the tile carries no crop and no building
func (t Tile) IsEmpty() bool {
	return t.Crop == "" && t.Building == ""
}

// GameState is the whole persisted state of one profile.
// Tiles are flattened row-major: index = y*GridWidth + x.
type GameState struct {
	Money     int       `json:"money"`
	XP        int       `json:"xp"`
	Tiles     []Tile    `json:"tiles"`
	Inventory Inventory `json:"inventory"`
	Stats     Stats     `json:"stats"`
}

// NewGameState returns a fully materialized state with TileCount default tiles
func NewGameState(money, xp int) GameState {
	return GameState{
		Money: money,
		XP:    xp,
		Tiles: make([]Tile, TileCount),
	}
}

// TileIndex converts grid coordinates to a flat index.
// Returns -1 when the coordinates fall outside the grid.
func TileIndex(x, y int) int {
	if x < 0 || x >= GridWidth || y < 0 || y >= GridHeight {
		return -1
	}
	return y*GridWidth + x
}

// TileAt returns the tile at (x, y), or a default Tile when the position is
// outside the grid or not present in Tiles.
func (s *GameState) TileAt(x, y int) Tile {
	idx := TileIndex(x, y)
	if idx < 0 || idx >= len(s.Tiles) {
		return Tile{}
	}
	return s.Tiles[idx]
}

// SetTile stores t at (x, y), growing Tiles with default tiles as needed.
// Returns false when the position is outside the grid.
func (s *GameState) SetTile(x, y int, t Tile) bool {
	idx := TileIndex(x, y)
	if idx < 0 {
		return false
	}
	if idx >= len(s.Tiles) {
		grown := make([]Tile, idx+1)
		copy(grown, s.Tiles)
		s.Tiles = grown
	}
	s.Tiles[idx] = t
	return true
}
