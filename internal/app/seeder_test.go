package app_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayseed/internal/app"
	"stayseed/internal/domain"
	"stayseed/internal/shared"
)

func TestSeedService_Run(t *testing.T) {
	w := &fakeWriter{}
	svc := app.NewSeedService(seeded(5), app.NewUploader(w, nil))

	runID, rep, err := svc.Run(context.Background(), shared.DefaultCities())
	require.NoError(t, err)
	_, perr := uuid.Parse(runID)
	assert.NoError(t, perr)

	assert.Len(t, w.calls, 2) // 70 records
	assert.Equal(t, 70, rep.Uploaded)
}

func TestSeedService_RunStopsBeforeUploadOnBadConfig(t *testing.T) {
	w := &fakeWriter{}
	svc := app.NewSeedService(seeded(5), app.NewUploader(w, nil))

	_, _, err := svc.Run(context.Background(), []domain.City{{Name: "Empty"}})
	assert.ErrorIs(t, err, domain.ErrNoZones)
	assert.Empty(t, w.calls)
}
