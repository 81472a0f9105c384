package mysql

// `type` is a keyword in most dialects; keep it quoted everywhere.
const insertPlacesPrefix = "INSERT INTO places\n" +
	"  (name, city, country, description, `type`, price_level, lat, lng, rating, amenities, vibes, image, zone_id)\n" +
	"VALUES "

// one group per record, appended to insertPlacesPrefix
const placeRowPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?)"

const placeColumns = 13

const countByCitySQL = "SELECT city, COUNT(*) FROM places GROUP BY city ORDER BY city"
