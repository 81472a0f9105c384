package shared_test

import (
	"testing"
	"time"

	"stayseed/internal/shared"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "secret")
	t.Setenv("UPLOAD_TIMEOUT_SECONDS", "5")
	t.Setenv("UPLOAD_RPS", "not-a-number")

	c := shared.Load()
	if c.StoreURL != "https://example.supabase.co" || c.StoreKey != "secret" {
		t.Fatalf("store settings not read from env: %+v", c)
	}
	if c.UploadTimeout != 5*time.Second {
		t.Fatalf("timeout: got %v", c.UploadTimeout)
	}
	if c.UploadRPS != 4 {
		t.Fatalf("invalid int should fall back to default, got %d", c.UploadRPS)
	}
	if c.Table != "places" || c.Sink != "rest" {
		t.Fatalf("unexpected defaults: table=%q sink=%q", c.Table, c.Sink)
	}
	if len(c.Cities) != 7 {
		t.Fatalf("expected 7 default cities, got %d", len(c.Cities))
	}
}

func TestDefaultCities_AllHaveZones(t *testing.T) {
	a := shared.DefaultCities()
	for _, c := range a {
		if len(c.Zones) == 0 {
			t.Fatalf("%s has no zones", c.Name)
		}
	}
	a[0].Name = "changed"
	if shared.DefaultCities()[0].Name != "Goa" {
		t.Fatalf("DefaultCities must return a fresh copy")
	}
}
