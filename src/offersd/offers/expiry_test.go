package offers

import (
	"testing"
	"time"
)

func TestComputeValidTo(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("summer date and hour", func(t *testing.T) {
		date := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
		hour := "13:45"
		got := ComputeValidTo(&date, &hour, warsaw, 7, now)
		want := time.Date(2025, 7, 30, 11, 45, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("winter date and hour", func(t *testing.T) {
		date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		hour := "09:00"
		got := ComputeValidTo(&date, &hour, warsaw, 7, now)
		want := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("missing hour falls back", func(t *testing.T) {
		date := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
		got := ComputeValidTo(&date, nil, warsaw, 7, now)
		want := now.AddDate(0, 0, 7)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("missing date falls back", func(t *testing.T) {
		hour := "13:45"
		got := ComputeValidTo(nil, &hour, warsaw, 14, now)
		want := now.AddDate(0, 0, 14)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("unparseable hour falls back", func(t *testing.T) {
		date := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
		hour := "around noon"
		got := ComputeValidTo(&date, &hour, warsaw, 7, now)
		want := now.AddDate(0, 0, 7)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("result is utc", func(t *testing.T) {
		date := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
		hour := "13:45"
		got := ComputeValidTo(&date, &hour, warsaw, 7, now)
		if got.Location() != time.UTC {
			t.Errorf("location = %v, want UTC", got.Location())
		}
	})
}
