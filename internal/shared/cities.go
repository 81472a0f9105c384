package shared

import "stayseed/internal/domain"

// DefaultCities returns a fresh copy of the seeded cities so callers may
// modify the slice without touching the defaults.
func DefaultCities() []domain.City {
	return []domain.City{
		{Name: "Goa", Country: "India", Lat: 15.2993, Lng: 74.1240, Zones: []string{"North Goa", "South Goa", "Panjim", "Calangute"}},
		{Name: "Bangalore", Country: "India", Lat: 12.9716, Lng: 77.5946, Zones: []string{"Indiranagar", "Koramangala", "Whitefield", "MG Road"}},
		{Name: "Mumbai", Country: "India", Lat: 19.0760, Lng: 72.8777, Zones: []string{"Bandra", "Colaba", "Juhu", "Andheri"}},
		{Name: "Jaipur", Country: "India", Lat: 26.9124, Lng: 75.7873, Zones: []string{"Pink City", "Amer", "Vaishali Nagar"}},
		{Name: "Manali", Country: "India", Lat: 32.2432, Lng: 77.1892, Zones: []string{"Old Manali", "Mall Road"}},
		{Name: "Coorg", Country: "India", Lat: 12.3375, Lng: 75.8069, Zones: []string{"Madikeri", "Virajpet"}},
		{Name: "Kerala", Country: "India", Lat: 10.8505, Lng: 76.2711, Zones: []string{"Munnar", "Alleppey", "Kochi"}},
	}
}
