package store

import (
	"context"
	"errors"
	"testing"
)

func TestRetryOnBusyRetriesLockedErrors(t *testing.T) {
	attempts := 0
	err := retryOnBusy(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retryOnBusy: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryOnBusyStopsOnOtherErrors(t *testing.T) {
	attempts := 0
	boom := errors.New("constraint failed")
	err := retryOnBusy(context.Background(), func() error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) || attempts != 1 {
		t.Fatalf("expected single attempt with original error, got %v after %d", err, attempts)
	}
}

func TestRetryOnBusyHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryOnBusy(ctx, func() error { return errors.New("SQLITE_BUSY") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
