package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeTranscriptSweeper sets up the scheduler that fails transcript
// jobs stuck in processing. The generation call itself has no retry logic,
// so without the sweeper a crashed worker would leave lessons in processing
// forever.
func InitializeTranscriptSweeper(svc *TranscriptService) *cron.Cron {
	log.Println("[TRANSCRIPT-SWEEPER] Initializing transcript sweeper...")

	c := cron.New()

	// Every 10 minutes, fail jobs processing for over an hour
	c.AddFunc("*/10 * * * *", func() {
		svc.SweepStale(time.Hour)
	})

	c.Start()
	log.Println("[TRANSCRIPT-SWEEPER] Transcript sweeper started - runs every 10 minutes")
	return c
}
