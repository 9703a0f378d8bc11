package domain

// Grid dimensions of the farm
const (
	GridWidth  = 20
	GridHeight = 20
	TileCount  = GridWidth * GridHeight
)

// Sync defaults exposed to the host
const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultProfile = "ue"
)

// API paths served by the backend
const (
	PathState  = "/api/state"
	PathReset  = "/api/reset"
	PathHealth = "/api/health"
)

// Profile routing
const (
	QueryParamProfile = "profile"
	HeaderProfile     = "X-Profile"
)
