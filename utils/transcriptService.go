package utils

import (
	"encoding/json"
	"log"
	"time"

	"microcourses/config"
	courseModels "microcourses/models/course"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// TranscriptService drives transcript generation for lesson videos against
// the hosted Whisper inference API. The call is fire-and-forget: a failed
// generation leaves the lesson in transcriptStatus=failed and a human must
// re-trigger it, there is no automatic retry.
type TranscriptService struct {
	db     *gorm.DB
	client *resty.Client
	apiURL string
}

func NewTranscriptService(db *gorm.DB, cfg *config.Config) *TranscriptService {
	client := resty.New().
		SetTimeout(2 * time.Minute).
		SetAuthToken(cfg.WhisperAPIKey)

	return &TranscriptService{
		db:     db,
		client: client,
		apiURL: cfg.WhisperAPIURL,
	}
}

// Trigger starts generation for a lesson. Returns a notice message when the
// transcript already exists; otherwise marks the lesson processing and runs
// the API call in the background.
func (s *TranscriptService) Trigger(lesson *courseModels.Lesson) string {
	if lesson.TranscriptStatus == courseModels.TranscriptCompleted {
		return "Transcript already generated"
	}

	s.setStatus(lesson.ID, courseModels.TranscriptProcessing)
	go s.generate(lesson.ID, lesson.VideoURL)

	return "Transcript generation started"
}

func (s *TranscriptService) generate(lessonID uint, videoURL string) {
	log.Printf("Starting transcript generation for lesson %d", lessonID)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"inputs": videoURL}).
		Post(s.apiURL)
	if err != nil {
		log.Printf("Error generating transcript for lesson %d: %v", lessonID, err)
		s.setStatus(lessonID, courseModels.TranscriptFailed)
		return
	}
	if resp.StatusCode() != 200 {
		log.Printf("Transcript API returned %d for lesson %d: %s", resp.StatusCode(), lessonID, resp.String())
		s.setStatus(lessonID, courseModels.TranscriptFailed)
		return
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil || result.Text == "" {
		log.Printf("Invalid transcript response for lesson %d: %v", lessonID, err)
		s.setStatus(lessonID, courseModels.TranscriptFailed)
		return
	}

	if err := s.db.Model(&courseModels.Lesson{}).Where("id = ?", lessonID).Updates(map[string]interface{}{
		"transcript":        result.Text,
		"transcript_status": courseModels.TranscriptCompleted,
	}).Error; err != nil {
		log.Printf("Error saving transcript for lesson %d: %v", lessonID, err)
		return
	}

	log.Printf("Transcript generated successfully for lesson %d", lessonID)
}

// SaveWebhookTranscript stores a transcript delivered by the external
// service's webhook.
func (s *TranscriptService) SaveWebhookTranscript(lessonID uint, transcript string) error {
	return s.db.Model(&courseModels.Lesson{}).Where("id = ?", lessonID).Updates(map[string]interface{}{
		"transcript":        transcript,
		"transcript_status": courseModels.TranscriptCompleted,
	}).Error
}

// SweepStale fails lessons stuck in processing longer than maxAge so they
// can be re-triggered manually.
func (s *TranscriptService) SweepStale(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	res := s.db.Model(&courseModels.Lesson{}).
		Where("transcript_status = ? AND updated_at < ?", courseModels.TranscriptProcessing, cutoff).
		Update("transcript_status", courseModels.TranscriptFailed)
	if res.Error != nil {
		log.Printf("Error sweeping stale transcripts: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Marked %d stale transcript jobs as failed", res.RowsAffected)
	}
}

func (s *TranscriptService) setStatus(lessonID uint, status string) {
	if err := s.db.Model(&courseModels.Lesson{}).Where("id = ?", lessonID).
		Update("transcript_status", status).Error; err != nil {
		log.Printf("Error updating transcript status for lesson %d: %v", lessonID, err)
	}
}
