package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// InsertPlaces writes rows with a single multi-row INSERT.
func (r *Repo) InsertPlaces(ctx context.Context, rows []domain.Accommodation) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*placeColumns)
	for _, p := range rows {
		amen, err := json.Marshal(p.Amenities)
		if err != nil {
			return err
		}
		vibes, err := json.Marshal(p.Vibes)
		if err != nil {
			return err
		}
		values = append(values, placeRowPlaceholders)
		args = append(args,
			p.Name, p.City, p.Country, p.Description, string(p.Category), p.PriceTier,
			p.Lat, p.Lng, p.Rating, string(amen), string(vibes), p.Image, p.ZoneID,
		)
	}
	_, err := r.db.ExecContext(ctx, insertPlacesPrefix+strings.Join(values, ","), args...)
	return err
}

// WriteBatch lets the repo stand in for the REST store. Rejections by the
// server (constraint violations, bad values) come back as a 422 result so
// the run continues; connection-level failures are returned as errors.
func (r *Repo) WriteBatch(ctx context.Context, rows []domain.Accommodation) (domain.WriteResult, error) {
	start := time.Now()
	err := r.InsertPlaces(ctx, rows)

	var me *driver.MySQLError
	switch {
	case err == nil:
		observability.ObserveExternal("mysql", "places", http.StatusCreated, time.Since(start))
		return domain.WriteResult{Status: http.StatusCreated}, nil
	case errors.As(err, &me):
		observability.ObserveExternal("mysql", "places", http.StatusUnprocessableEntity, time.Since(start))
		return domain.WriteResult{
			Status: http.StatusUnprocessableEntity,
			Body:   fmt.Sprintf("%d: %s", me.Number, me.Message),
		}, nil
	default:
		observability.ObserveExternal("mysql", "places", 0, time.Since(start))
		return domain.WriteResult{}, err
	}
}

// CountByCity returns the number of stored places per city.
func (r *Repo) CountByCity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, countByCitySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var city string
		var n int
		if err := rows.Scan(&city, &n); err != nil {
			return nil, err
		}
		out[city] = n
	}
	return out, rows.Err()
}
