package snowflake

import (
	"sync"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/model"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name      string
		machineID int64
		expectErr bool
	}{
		{"valid min", 0, false},
		{"valid mid", 512, false},
		{"valid max", 1023, false},
		{"invalid negative", -1, true},
		{"invalid too large", 1024, true},
		{"invalid very large", 9999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.machineID)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for machineID=%d, got nil", tt.machineID)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for machineID=%d: %v", tt.machineID, err)
				return
			}
			if gen.machineID != tt.machineID {
				t.Errorf("generator machineID = %d, want %d", gen.machineID, tt.machineID)
			}
		})
	}
}

// TestGenerateAssignsLinkIDs mirrors how internal/linksvc.Service.Create
// uses the generator: mint an ID, attach it to a model.Link, and verify the
// IDs it hands to a run of links stay unique and positive.
func TestGenerateAssignsLinkIDs(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	links := make([]*model.Link, 0, 1000)
	seen := make(map[int64]bool)

	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %d", id)
		}
		seen[id] = true
		if id <= 0 {
			t.Fatalf("generated non-positive ID: %d", id)
		}
		links = append(links, &model.Link{ID: id, Code: "x", Status: model.StatusEnabled})
	}

	if len(links) != 1000 {
		t.Fatalf("expected 1000 links, got %d", len(links))
	}
}

// TestGenerateAssignsEventIDsConcurrently mirrors
// internal/redirectsvc.Pipeline's worker pool: several workers mint
// AccessEvent IDs off the same shared Generator concurrently, and every ID
// handed out must be unique.
func TestGenerateAssignsEventIDsConcurrently(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	workers := 10
	eventsPerWorker := 100

	var wg sync.WaitGroup
	idsChan := make(chan int64, workers*eventsPerWorker)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerWorker; j++ {
				id, err := gen.Generate()
				if err != nil {
					t.Errorf("Generate() error: %v", err)
					return
				}
				idsChan <- id
			}
		}()
	}

	wg.Wait()
	close(idsChan)

	events := make([]*model.AccessEvent, 0, workers*eventsPerWorker)
	seen := make(map[int64]bool)
	for id := range idsChan {
		if seen[id] {
			t.Fatalf("duplicate ID in concurrent generation: %d", id)
		}
		seen[id] = true
		events = append(events, &model.AccessEvent{ID: id, Code: "concurrent"})
	}

	expected := workers * eventsPerWorker
	if len(events) != expected {
		t.Fatalf("expected %d unique event IDs, got %d", expected, len(events))
	}
}

func TestParseID(t *testing.T) {
	gen, err := NewGenerator(123)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	id, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	timestamp, machineID, sequence := ParseID(id)

	if machineID != 123 {
		t.Errorf("parsed machineID = %d, want 123", machineID)
	}
	if sequence < 0 || sequence > maxSequence {
		t.Errorf("parsed sequence = %d, out of range [0, %d]", sequence, maxSequence)
	}

	now := time.Now().UnixMilli()
	if timestamp < now-1000 || timestamp > now+1000 {
		t.Errorf("parsed timestamp = %d, too far from now=%d", timestamp, now)
	}
}

func TestParseIDToTime(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	before := time.Now()
	id, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	after := time.Now()

	// IDs carry millisecond precision, so the lower bound is before truncated
	// to the millisecond.
	parsedTime := ParseIDToTime(id)
	if parsedTime.Before(before.Truncate(time.Millisecond)) || parsedTime.After(after) {
		t.Errorf("parsed time %s is not between %s and %s", parsedTime, before, after)
	}
}

func TestGenerateRefusesClockRegression(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	gen.lastTimestamp = currentMilliseconds() + int64(time.Hour/time.Millisecond)

	if _, err := gen.Generate(); err == nil {
		t.Fatal("expected ErrClockMovedBackwards, got nil")
	}
}

func TestSequenceOverflowWaitsForNextMillisecond(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	count := 5000
	successCount := 0
	for i := 0; i < count; i++ {
		if _, err := gen.Generate(); err == nil {
			successCount++
		}
	}

	if successCount != count {
		t.Errorf("expected all %d IDs to be generated, got %d", count, successCount)
	}
}

func TestMonotonicity(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	var lastID int64
	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if id <= lastID {
			t.Fatalf("ID not monotonically increasing: last=%d, current=%d", lastID, id)
		}
		lastID = id
	}
}

func BenchmarkGenerate(b *testing.B) {
	gen, _ := NewGenerator(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Generate()
	}
}

func BenchmarkGenerateConcurrent(b *testing.B) {
	gen, _ := NewGenerator(1)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			gen.Generate()
		}
	})
}
