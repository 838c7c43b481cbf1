package documents

import (
	"time"

	"legalens-backend/internal/analysis"
)

// Document represents an uploaded legal document owned by a user, including
// its extracted text and the analysis produced at upload time. Only
// LastAccessed mutates after creation; re-analysis creates a new record.
type Document struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	FileName      string             `json:"fileName"`
	OriginalName  string             `json:"originalName"`
	StorageKey    string             `json:"-"`
	ExtractedText string             `json:"extractedText,omitempty"`
	SizeBytes     int64              `json:"sizeBytes"`
	DocumentType  string             `json:"documentType"`
	RiskLevel     analysis.RiskLevel `json:"riskLevel"`
	HasDeadlines  bool               `json:"hasDeadlines"`
	Tags          []string           `json:"tags"`
	Analysis      analysis.Result    `json:"analysis"`
	UploadedAt    time.Time          `json:"uploadedAt"`
	LastAccessed  time.Time          `json:"lastAccessed"`
}

// Stats aggregates a user's document collection.
type Stats struct {
	TotalDocuments int            `json:"totalDocuments"`
	TotalSizeBytes int64          `json:"totalSizeBytes"`
	ByRiskLevel    map[string]int `json:"byRiskLevel"`
	ByType         map[string]int `json:"byType"`
	RecentUploads  int            `json:"recentUploads"`
}
