package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/domain"
)

const (
	runsKey = "seed:runs"
	keepRun = 100
)

// Journal keeps per-run chunk outcomes in Redis so an operator can see what
// a past run lost.
type Journal struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Journal {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *Journal {
	return &Journal{c: c, ttl: ttl}
}

func chunksKey(runID string) string  { return fmt.Sprintf("seed:run:%s:chunks", runID) }
func summaryKey(runID string) string { return fmt.Sprintf("seed:run:%s:summary", runID) }

func (j *Journal) RecordChunk(ctx context.Context, runID string, r domain.ChunkResult) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := chunksKey(runID)
	pipe := j.c.TxPipeline()
	pipe.HSet(ctx, key, strconv.Itoa(r.Number), b)
	pipe.Expire(ctx, key, j.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	observability.ObserveJournal("chunk")
	return nil
}

func (j *Journal) Finish(ctx context.Context, runID string, rep domain.UploadReport) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	pipe := j.c.TxPipeline()
	pipe.Set(ctx, summaryKey(runID), b, j.ttl)
	pipe.LPush(ctx, runsKey, runID)
	pipe.LTrim(ctx, runsKey, 0, keepRun-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	observability.ObserveJournal("finish")
	return nil
}

// Summary returns the stored report of a finished run.
func (j *Journal) Summary(ctx context.Context, runID string) (domain.UploadReport, bool, error) {
	var rep domain.UploadReport
	v, err := j.c.Get(ctx, summaryKey(runID)).Bytes()
	if err == redis.Nil {
		return rep, false, nil
	}
	if err != nil {
		return rep, false, err
	}
	return rep, true, json.Unmarshal(v, &rep)
}

// Chunks returns every recorded chunk outcome of a run, keyed by chunk number.
func (j *Journal) Chunks(ctx context.Context, runID string) (map[int]domain.ChunkResult, error) {
	raw, err := j.c.HGetAll(ctx, chunksKey(runID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[int]domain.ChunkResult, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		var cr domain.ChunkResult
		if err := json.Unmarshal([]byte(v), &cr); err != nil {
			return nil, err
		}
		out[n] = cr
	}
	return out, nil
}

// RecentRuns lists run ids, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = keepRun
	}
	return j.c.LRange(ctx, runsKey, 0, limit-1).Result()
}

func (j *Journal) Close() error { return j.c.Close() }
