package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalens-backend/internal/analysis"
	"legalens-backend/internal/extract"
	"legalens-backend/internal/shared/storage/object"
)

const recentUploadsWindow = 7 * 24 * time.Hour

// Service contains business logic for documents.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Analyzer *analysis.Client
}

// Upload stores the file, extracts its text, runs the analysis and records
// the document. The analysis itself cannot fail (it degrades to a fallback
// result), so a successful upload always carries a well-formed analysis.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	text, err := extract.TextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		// The stored object is useless without extractable text; undo it.
		_ = s.Store.Delete(ctx, storageKey)
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := s.Analyzer.Analyze(ctx, text, fileName)
	return s.SaveAnalyzed(ctx, userID, storageKey, fileName, text, result, size)
}

// SaveAnalyzed records an analyzed document, deriving its tags and overall
// risk level from the analysis.
func (s *Service) SaveAnalyzed(ctx context.Context, userID, storageKey, originalName, text string, result analysis.Result, size int64) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	doc := Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      originalName,
		OriginalName:  originalName,
		StorageKey:    storageKey,
		ExtractedText: text,
		SizeBytes:     size,
		DocumentType:  result.DocumentType,
		RiskLevel:     analysis.OverallRiskLevel(result.Risks),
		HasDeadlines:  len(result.Deadlines) > 0,
		Tags:          deriveTags(result),
		Analysis:      result,
		UploadedAt:    now,
		LastAccessed:  now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns an owned document, updating its lastAccessed timestamp as a
// side effect of the read.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return Document{}, err
	}
	ts := time.Now().UTC()
	if err := s.Repo.TouchLastAccessed(ctx, userID, documentID, ts); err != nil {
		return Document{}, err
	}
	doc.LastAccessed = ts
	return doc, nil
}

// List returns all of the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Search filters the user's documents by case-insensitive substring match
// across file name, document type, tags and analysis summary.
func (s *Service) Search(ctx context.Context, userID, query string) ([]Document, error) {
	docs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return docs, nil
	}

	out := []Document{}
	for _, doc := range docs {
		if matchesQuery(doc, needle) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Delete removes an owned document and its stored object.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}
	if doc.StorageKey != "" {
		_ = s.Store.Delete(ctx, doc.StorageKey)
	}
	return nil
}

// BulkDelete removes the owned subset of the given ids and reports the count.
func (s *Service) BulkDelete(ctx context.Context, userID string, documentIDs []string) (int, error) {
	if len(documentIDs) == 0 {
		return 0, nil
	}
	return s.Repo.DeleteMany(ctx, userID, documentIDs)
}

// GetStats aggregates the user's collection, counting uploads within the
// trailing recentUploadsWindow as recent.
func (s *Service) GetStats(ctx context.Context, userID string) (Stats, error) {
	docs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		ByRiskLevel: map[string]int{},
		ByType:      map[string]int{},
	}
	cutoff := time.Now().UTC().Add(-recentUploadsWindow)
	for _, doc := range docs {
		stats.TotalDocuments++
		stats.TotalSizeBytes += doc.SizeBytes
		stats.ByRiskLevel[string(doc.RiskLevel)]++
		docType := doc.DocumentType
		if docType == "" {
			docType = "Unknown"
		}
		stats.ByType[docType]++
		if doc.UploadedAt.After(cutoff) {
			stats.RecentUploads++
		}
	}
	return stats, nil
}

func matchesQuery(doc Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.FileName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.DocumentType), needle) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(doc.Analysis.Summary), needle)
}

// deriveTags builds the document's tag set: type, risk bucket, deadline
// presence, plus up to 3 keyword tags taken from the key points.
func deriveTags(result analysis.Result) []string {
	tags := []string{}
	if result.DocumentType != "" {
		tags = append(tags, strings.ToLower(result.DocumentType))
	}
	tags = append(tags, strings.ToLower(string(analysis.OverallRiskLevel(result.Risks)))+"-risk")
	if len(result.Deadlines) > 0 {
		tags = append(tags, "has-deadlines")
	}

	added := 0
	for _, point := range result.KeyPoints {
		if added >= 3 {
			break
		}
		if kw := keywordFrom(point); kw != "" && !contains(tags, kw) {
			tags = append(tags, kw)
			added++
		}
	}
	return tags
}

var keywordStopwords = map[string]struct{}{
	"about": {}, "after": {}, "agree": {}, "between": {}, "could": {},
	"every": {}, "other": {}, "shall": {}, "their": {},
	"there": {}, "these": {}, "under": {}, "which": {}, "within": {},
	"would": {},
}

func keywordFrom(point string) string {
	for _, word := range strings.Fields(strings.ToLower(point)) {
		word = strings.Trim(word, ".,;:()'\"")
		if len(word) < 5 {
			continue
		}
		if _, stop := keywordStopwords[word]; stop {
			continue
		}
		return word
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
