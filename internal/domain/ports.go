package domain

import "context"

// Rand is the randomness the generator consumes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// BatchWriter sends one chunk to the store. A non-nil error means the
// store could not be reached at all; any HTTP-level outcome is in WriteResult.
type BatchWriter interface {
	WriteBatch(ctx context.Context, rows []Accommodation) (WriteResult, error)
}

type RunJournal interface {
	RecordChunk(ctx context.Context, runID string, r ChunkResult) error
	Finish(ctx context.Context, runID string, rep UploadReport) error
}

type WriteResult struct {
	Status int
	Body   string
}

type ChunkResult struct {
	Number  int    `json:"number"` // 1-based
	Records int    `json:"records"`
	Status  int    `json:"status"`
	Body    string `json:"body,omitempty"`
	OK      bool   `json:"ok"`
}

type UploadReport struct {
	Chunks   []ChunkResult `json:"chunks"`
	Uploaded int           `json:"uploaded"` // records in successful chunks
	Failed   int           `json:"failed"`   // records in failed chunks
}

// FailedChunks returns the numbers of chunks the store did not accept.
func (r UploadReport) FailedChunks() []int {
	var out []int
	for _, c := range r.Chunks {
		if !c.OK {
			out = append(out, c.Number)
		}
	}
	return out
}
