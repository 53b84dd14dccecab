package constants

// Category ids match the ids the mobile client ships in its category strip.
const (
	CategoryFurniture  = "1"
	CategoryFashion    = "2"
	CategoryFood       = "3"
	CategoryArt        = "4"
	CategoryAppliances = "5"
	CategoryHandmade   = "6"
	CategoryServices   = "7"
	CategoryOther      = "8"
)

// CategoryNames maps category id to its display name (ja).
var CategoryNames = map[string]string{
	CategoryFurniture:  "家具",
	CategoryFashion:    "ファッション",
	CategoryFood:       "食品",
	CategoryArt:        "アート",
	CategoryAppliances: "家電",
	CategoryHandmade:   "ハンドメイド",
	CategoryServices:   "サービス",
	CategoryOther:      "その他",
}

// IsValidCategory returns true if id is a known category id.
func IsValidCategory(id string) bool {
	_, ok := CategoryNames[id]
	return ok
}

// CategoryName returns the display name for id, falling back to その他.
func CategoryName(id string) string {
	if name, ok := CategoryNames[id]; ok {
		return name
	}
	return CategoryNames[CategoryOther]
}
