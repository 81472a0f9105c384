package integration

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "stayseed/internal/adapters/http_server"
	"stayseed/internal/adapters/postgrest"
	redisad "stayseed/internal/adapters/redis"
	"stayseed/internal/app"
	"stayseed/internal/domain"
	"stayseed/internal/shared"
	"stayseed/internal/storage/memory"
)

const key = "service-role-test"

// fakeStore serves the real fake-store router; failChunk > 0 makes that
// request (1-based) answer 503 without storing anything.
func fakeStore(t *testing.T, failChunk int32, runs server.RunReader) (*httptest.Server, *memory.Tables, *int32) {
	t.Helper()
	tables := memory.New()
	srv := server.New()
	srv.MountHandlers(&server.Handlers{Tables: tables, Key: key, Runs: runs})
	mux := srv.Mux()

	var posts int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if n := atomic.AddInt32(&posts, 1); n == failChunk {
				http.Error(w, `{"message":"upstream unavailable"}`, http.StatusServiceUnavailable)
				return
			}
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, tables, &posts
}

func seedService(t *testing.T, baseURL string, j domain.RunJournal) *app.SeedService {
	t.Helper()
	client, err := postgrest.New(baseURL, key, "places", 5*time.Second, 0)
	require.NoError(t, err)
	gen := app.NewGenerator(rand.New(rand.NewPCG(11, 12)))
	return app.NewSeedService(gen, app.NewUploader(client, j))
}

// 13 cities -> 130 records -> chunks of 50, 50, 30
func manyCities() []domain.City {
	cities := shared.DefaultCities()
	return append(cities, shared.DefaultCities()[:6]...)
}

func TestSeed_EndToEnd_AllCreated(t *testing.T) {
	ts, tables, posts := fakeStore(t, 0, nil)

	_, rep, err := seedService(t, ts.URL, nil).Run(context.Background(), manyCities())
	require.NoError(t, err)

	assert.EqualValues(t, 3, atomic.LoadInt32(posts))
	assert.Equal(t, 130, rep.Uploaded)
	assert.Empty(t, rep.FailedChunks())

	rows := tables.List("places")
	require.Len(t, rows, 130)
	for _, r := range rows {
		assert.True(t, domain.CategoryMatchesTier(r.Category, r.PriceTier))
	}

	// read back through the REST surface
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/rest/v1/places?city=eq.Goa", nil)
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var goa []domain.Accommodation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&goa))
	assert.Len(t, goa, 2*app.PerCity) // Goa appears twice in manyCities
}

func TestSeed_EndToEnd_MiddleChunkFails(t *testing.T) {
	ts, tables, posts := fakeStore(t, 2, nil)

	_, rep, err := seedService(t, ts.URL, nil).Run(context.Background(), manyCities())
	require.NoError(t, err, "a rejected chunk must not abort the run")

	assert.EqualValues(t, 3, atomic.LoadInt32(posts), "no retry of chunk 2")
	assert.Equal(t, []int{2}, rep.FailedChunks())
	assert.Equal(t, http.StatusServiceUnavailable, rep.Chunks[1].Status)
	assert.Contains(t, rep.Chunks[1].Body, "upstream unavailable")
	assert.Equal(t, 80, rep.Uploaded)
	assert.Len(t, tables.List("places"), 80)
}

func TestSeed_EndToEnd_WrongKeyRejectsEveryChunk(t *testing.T) {
	ts, tables, _ := fakeStore(t, 0, nil)
	client, err := postgrest.New(ts.URL, "wrong", "places", time.Second, 0)
	require.NoError(t, err)
	svc := app.NewSeedService(app.NewGenerator(rand.New(rand.NewPCG(1, 1))), app.NewUploader(client, nil))

	_, rep, err := svc.Run(context.Background(), shared.DefaultCities())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, rep.FailedChunks())
	assert.Equal(t, http.StatusUnauthorized, rep.Chunks[0].Status)
	assert.Zero(t, tables.Count("places"))
}

func TestSeed_EndToEnd_StoreDownAborts(t *testing.T) {
	ts, _, _ := fakeStore(t, 0, nil)
	url := ts.URL
	ts.Close()

	_, rep, err := seedService(t, url, nil).Run(context.Background(), shared.DefaultCities())
	require.Error(t, err)
	assert.Empty(t, rep.Chunks)
}

func TestSeed_EndToEnd_JournalVisibleThroughFakeStore(t *testing.T) {
	mr := miniredis.RunT(t)
	j := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	t.Cleanup(func() { _ = j.Close() })

	ts, _, _ := fakeStore(t, 1, j)
	runID, _, err := seedService(t, ts.URL, j).Run(context.Background(), shared.DefaultCities())
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/seed/runs/" + runID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep domain.UploadReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, []int{1}, rep.FailedChunks())
	assert.Equal(t, 20, rep.Uploaded)
}
