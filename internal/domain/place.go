package domain

import "errors"

// ErrNoZones is returned when a city has no zones to place records in.
var ErrNoZones = errors.New("city has no zones")

type Category string

const (
	CategoryResort   Category = "resort"
	CategoryHotel    Category = "hotel"
	CategoryHostel   Category = "hostel"
	CategoryHomestay Category = "homestay"
)

// CategoryMatchesTier reports whether a category is allowed for a price tier:
// 4 => resort, 3 => hotel, 1-2 => hostel or homestay.
func CategoryMatchesTier(c Category, tier int) bool {
	switch tier {
	case 4:
		return c == CategoryResort
	case 3:
		return c == CategoryHotel
	case 1, 2:
		return c == CategoryHostel || c == CategoryHomestay
	}
	return false
}

type City struct {
	Name     string
	Country  string
	Lat, Lng float64
	Zones    []string
}

type Accommodation struct {
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	Category    Category `json:"type"`
	PriceTier   int      `json:"price_level"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities"`
	Vibes       []string `json:"vibes"`
	Image       string   `json:"image"`
	ZoneID      string   `json:"zone_id"`
}
