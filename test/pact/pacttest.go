//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pawsit-api"
	ConsumerName = "pawsit-portal"

	StateBookingsBaseline = "bookings baseline"
	StateBookingExists    = "booking with id 301 exists"
	StateBookingMissing   = "no booking with id 404"
)

const (
	ExistingBookingID int64 = 301
	MissingBookingID  int64 = 404

	OwnerID  int64 = 10
	SitterID int64 = 20
	PetID    int64 = 100
)

const (
	exampleStartDate = "2026-04-01T08:00:00Z"
	exampleEndDate   = "2026-04-03T08:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleBookingPayload provides stable test data for booking interactions.
func ExampleBookingPayload() map[string]any {
	return map[string]any{
		"id":          ExistingBookingID,
		"ownerId":     OwnerID,
		"sitterId":    SitterID,
		"petIds":      []int64{PetID},
		"status":      "PENDING",
		"totalAmount": 150.0,
		"startDate":   exampleStartDate,
		"endDate":     exampleEndDate,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
