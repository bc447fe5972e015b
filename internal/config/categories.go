package config

const (
	CategoryMusic       = "🎵 Music"
	CategoryPlaylists   = "📜 Playlists"
	CategoryInformation = "🕯️ Information"
	CategoryMaintenance = "🛠️ Maintenance"
)

// CategoryWeights orders command categories in help listings.
var CategoryWeights = map[string]int{
	CategoryInformation: 0,
	CategoryMusic:       10,
	CategoryPlaylists:   20,
	CategoryMaintenance: 60,
}
