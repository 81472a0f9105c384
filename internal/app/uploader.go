package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/domain"
)

// ChunkSize is the number of records sent per store write.
const ChunkSize = 50

type Uploader struct {
	w       domain.BatchWriter
	journal domain.RunJournal // optional
	size    int
}

func NewUploader(w domain.BatchWriter, j domain.RunJournal) *Uploader {
	return &Uploader{w: w, journal: j, size: ChunkSize}
}

// Upload writes records chunk by chunk, in order. A chunk the store answers
// with anything but 201 is logged and skipped; no chunk is ever retried.
// A transport error stops the run and is returned with the partial report.
func (u *Uploader) Upload(ctx context.Context, runID string, records []domain.Accommodation) (domain.UploadReport, error) {
	var rep domain.UploadReport
	chunks := Chunk(records, u.size)

	log.Info().Str("run_id", runID).Int("records", len(records)).Int("chunks", len(chunks)).Msg("uploading")

	for i, c := range chunks {
		n := i + 1
		res, err := u.w.WriteBatch(ctx, c)
		if err != nil {
			observability.ObserveChunk("aborted")
			u.finish(ctx, runID, rep)
			return rep, fmt.Errorf("upload chunk %d: %w", n, err)
		}

		cr := domain.ChunkResult{Number: n, Records: len(c), Status: res.Status}
		if res.Status == http.StatusCreated {
			cr.OK = true
			rep.Uploaded += len(c)
			observability.ObserveChunk("ok")
			log.Info().Int("chunk", n).Int("records", len(c)).Msg("chunk uploaded")
		} else {
			cr.Body = res.Body
			rep.Failed += len(c)
			observability.ObserveChunk("failed")
			log.Error().Int("chunk", n).Int("status", res.Status).Str("body", res.Body).Msg("chunk upload failed")
		}
		rep.Chunks = append(rep.Chunks, cr)

		if u.journal != nil {
			if err := u.journal.RecordChunk(ctx, runID, cr); err != nil {
				observability.ObserveJournal("error")
				log.Warn().Err(err).Int("chunk", n).Msg("journal write failed")
			}
		}
	}

	u.finish(ctx, runID, rep)
	return rep, nil
}

func (u *Uploader) finish(ctx context.Context, runID string, rep domain.UploadReport) {
	if u.journal == nil {
		return
	}
	if err := u.journal.Finish(ctx, runID, rep); err != nil {
		observability.ObserveJournal("error")
		log.Warn().Err(err).Msg("journal finish failed")
	}
}

// Chunk splits records into consecutive slices of at most size elements.
// The returned slices alias records.
func Chunk(records []domain.Accommodation, size int) [][]domain.Accommodation {
	if size <= 0 {
		size = ChunkSize
	}
	out := make([][]domain.Accommodation, 0, (len(records)+size-1)/size)
	for i := 0; i < len(records); i += size {
		end := i + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[i:end])
	}
	return out
}
