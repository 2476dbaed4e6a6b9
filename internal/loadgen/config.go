// Package loadgen drives a running assistant with synthetic press content and
// checks every pipeline response against the scoring and drafting rules.
package loadgen

import (
	"time"

	"github.com/okian/outreach/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Requests   int           // Number of /process requests to send
	Recipients int           // Recipients per request
	Workers    int           // Number of concurrent requests
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Generator seed; zero uses the clock
	OutputFile string        // Report file; empty skips the report
	Verbose    bool          // Log every failed check
}

// ProcessRequest mirrors the POST /process body.
type ProcessRequest struct {
	Content    model.ContentItem        `json:"content"`
	Recipients []model.RecipientProfile `json:"recipients"`
}

// Stats holds run statistics.
type Stats struct {
	RequestsGenerated int           `json:"requests_generated"`
	RequestsSent      int64         `json:"requests_sent"`
	RequestsOK        int64         `json:"requests_ok"`
	RequestsFailed    int64         `json:"requests_failed"`
	CheckFailures     int64         `json:"check_failures"`
	Matches           int64         `json:"matches"`
	Recommendations   int64         `json:"recommendations"`
	UrgentDrafts      int64         `json:"urgent_drafts"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	Duration          time.Duration `json:"duration_ns"`
}
