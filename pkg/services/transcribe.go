package services

import (
	"context"
	"log"
	"time"
)

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// TranscribeWithRetries runs t.Transcribe up to maxAttempts times with
// linearly increasing backoff (attempt * 1s). The last error propagates
// when every attempt fails; transcription has no soft-failure fallback.
func TranscribeWithRetries(ctx context.Context, t Transcriber, audioPath string, maxAttempts int) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := t.Transcribe(ctx, audioPath)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("[transcribe] attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if attempt == maxAttempts {
			break
		}
		sleepWithContext(ctx, time.Duration(attempt)*time.Second)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
