package domain

// Stats holds the cumulative counters of a farm
type Stats struct {
	CropsPlanted         int `json:"cropsPlanted"`
	CropsHarvested       int `json:"cropsHarvested"`
	ProductsCollected    int `json:"productsCollected"`
	BuildingsConstructed int `json:"buildingsConstructed"`
	ProductsProcessed    int `json:"productsProcessed"`
	MoneyEarned          int `json:"moneyEarned"`
}

// Counters returns pointers to each counter keyed by its JSON name
func (s *Stats) Counters() map[string]*int {
	return map[string]*int{
		"cropsPlanted":         &s.CropsPlanted,
		"cropsHarvested":       &s.CropsHarvested,
		"productsCollected":    &s.ProductsCollected,
		"buildingsConstructed": &s.BuildingsConstructed,
		"productsProcessed":    &s.ProductsProcessed,
		"moneyEarned":          &s.MoneyEarned,
	}
}
