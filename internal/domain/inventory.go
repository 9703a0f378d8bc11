package domain

// Inventory holds the named item counters of a farm.
// Every key is always written on encode.
type Inventory struct {
	Eggs      int `json:"eggs"`
	Milk      int `json:"milk"`
	GrainPack int `json:"grain_pack"`
	Flour     int `json:"flour"`
	Water     int `json:"water"`
	Meal      int `json:"meal"`
	Toolkit   int `json:"toolkit"`
	Wheat     int `json:"wheat"`
	Corn      int `json:"corn"`
	Carrot    int `json:"carrot"`
	Potato    int `json:"potato"`
	Tomato    int `json:"tomato"`
	Pumpkin   int `json:"pumpkin"`
	Sunflower int `json:"sunflower"`
}

// Counters returns pointers to each counter keyed by its JSON name.
// Used by the tolerant decoder to fill fields one at a time.
func (i *Inventory) Counters() map[string]*int {
	return map[string]*int{
		"eggs":       &i.Eggs,
		"milk":       &i.Milk,
		"grain_pack": &i.GrainPack,
		"flour":      &i.Flour,
		"water":      &i.Water,
		"meal":       &i.Meal,
		"toolkit":    &i.Toolkit,
		"wheat":      &i.Wheat,
		"corn":       &i.Corn,
		"carrot":     &i.Carrot,
		"potato":     &i.Potato,
		"tomato":     &i.Tomato,
		"pumpkin":    &i.Pumpkin,
		"sunflower":  &i.Sunflower,
	}
}
