package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/domain"
)

/********** templates **********/

var (
	resortPrefixes = []string{"Grand", "Royal", "The", "Elite", "Luxury", "Cozy"}
	resortSuffixes = []string{"Resort", "Hotel", "Suites", "Stay", "Villa", "Palace", "Residency"}
	hotelWords     = []string{"City", "Central", "View", "Plaza"}
	budgetWords    = []string{"Backpackers", "Heritage", "Nest", "Hideaway"}
	budgetKinds    = []domain.Category{domain.CategoryHostel, domain.CategoryHomestay}
)

// tier holds everything fixed for one price bracket.
type tier struct {
	count          int
	offset         float64 // max |delta| in degrees, per axis
	minRat, maxRat float64
	amenities      []string
	vibes          []string
	image          string
}

var (
	resortTier = tier{
		count: 3, offset: 0.05, minRat: 4.5, maxRat: 5.0,
		amenities: []string{"pool", "spa", "wifi", "bar", "beach_access", "breakfast"},
		vibes:     []string{"luxury", "relaxing", "romantic"},
		image:     "https://images.unsplash.com/photo-1571896349842-6e53ce41be63?auto=format&fit=crop&w=800",
	}
	hotelTier = tier{
		count: 4, offset: 0.03, minRat: 4.0, maxRat: 4.6,
		amenities: []string{"wifi", "parking", "restaurant", "gym"},
		vibes:     []string{"city", "convenient"},
		image:     "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&w=800",
	}
	budgetTier = tier{
		count: 3, offset: 0.02, minRat: 3.8, maxRat: 4.5,
		amenities: []string{"wifi", "kitchen", "laundry"},
		vibes:     []string{"social", "budget", "rustic"},
		image:     "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?auto=format&fit=crop&w=800",
	}
)

// PerCity is the number of records Generate produces for one city.
const PerCity = 10

type Generator struct {
	rnd domain.Rand
}

func NewGenerator(r domain.Rand) *Generator {
	return &Generator{rnd: r}
}

// Generate returns PerCity records for city: 3 resorts, 4 hotels and 3 budget stays.
func (g *Generator) Generate(city domain.City) ([]domain.Accommodation, error) {
	if len(city.Zones) == 0 {
		return nil, fmt.Errorf("generate %q: %w", city.Name, domain.ErrNoZones)
	}
	out := make([]domain.Accommodation, 0, PerCity)

	for i := 0; i < resortTier.count; i++ {
		zone := g.zone(city)
		name := fmt.Sprintf("%s %s %s", pick(g.rnd, resortPrefixes), city.Name, pick(g.rnd, resortSuffixes))
		desc := fmt.Sprintf("Experience world-class luxury at %s, located in the beautiful %s area. Features sea views and spa.", name, zone)
		out = append(out, g.record(city, resortTier, name, desc, domain.CategoryResort, 4, zone))
	}

	for i := 0; i < hotelTier.count; i++ {
		zone := g.zone(city)
		name := fmt.Sprintf("%s %s Hotel", city.Name, pick(g.rnd, hotelWords))
		desc := fmt.Sprintf("A comfortable and modern stay in %s, perfect for travelers and families.", zone)
		out = append(out, g.record(city, hotelTier, name, desc, domain.CategoryHotel, 3, zone))
	}

	for i := 0; i < budgetTier.count; i++ {
		zone := g.zone(city)
		kind := pick(g.rnd, budgetKinds)
		name := fmt.Sprintf("%s %s %s", city.Name, pick(g.rnd, budgetWords), capitalize(string(kind)))
		desc := fmt.Sprintf("A cozy and affordable %s in %s. Great for meeting fellow travelers.", kind, zone)
		level := 1 + g.rnd.IntN(2)
		out = append(out, g.record(city, budgetTier, name, desc, kind, level, zone))
	}

	return out, nil
}

// GenerateAll concatenates Generate over cities in order. The first city
// without zones aborts the whole batch.
func (g *Generator) GenerateAll(cities []domain.City) ([]domain.Accommodation, error) {
	all := make([]domain.Accommodation, 0, len(cities)*PerCity)
	for _, c := range cities {
		recs, err := g.Generate(c)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			observability.ObserveGenerated(string(r.Category), 1)
		}
		all = append(all, recs...)
		log.Info().Str("city", c.Name).Int("records", len(recs)).Msg("prepared stays")
	}
	return all, nil
}

func (g *Generator) record(city domain.City, t tier, name, desc string, cat domain.Category, level int, zone string) domain.Accommodation {
	return domain.Accommodation{
		Name:        name,
		City:        city.Name,
		Country:     city.Country,
		Description: desc,
		Category:    cat,
		PriceTier:   level,
		Lat:         city.Lat + g.uniform(-t.offset, t.offset),
		Lng:         city.Lng + g.uniform(-t.offset, t.offset),
		Rating:      round1(g.uniform(t.minRat, t.maxRat)),
		Amenities:   append([]string(nil), t.amenities...),
		Vibes:       append([]string(nil), t.vibes...),
		Image:       t.image,
		ZoneID:      zone,
	}
}

func (g *Generator) zone(city domain.City) string {
	return pick(g.rnd, city.Zones)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rnd.Float64()
}

/********** tiny helpers **********/

func pick[T any](r domain.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

// round1 rounds to one decimal place; bounds stay inside [lo,hi] because
// both ends are themselves one-decimal values.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
