package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// Export writes the full record as indented JSON.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	data := s.GetData(ctx)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	return nil
}

// ExportFilename returns the default export file name for the given day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("job-platform-data-%s.json", now.Format("2006-01-02"))
}

// Import replaces the whole record with the one read from r. Files from older
// versions are decoded leniently and upgraded; entry ids that are missing or
// duplicated are regenerated. Any read, parse or schema failure returns
// ErrInvalidFormat and leaves the stored record untouched.
func (s *Store) Import(ctx context.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	data, err := decodeImport(raw)
	if err != nil {
		s.logger.Warn("rejected import", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if _, err := normalizeRecord(ctx, s, data); err != nil {
		return err
	}
	data.Version = types.CurrentVersion

	if err := s.SaveData(ctx, data); err != nil {
		if errors.Is(err, ErrInvalidRecord) {
			s.logger.Warn("rejected import", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return err
	}
	s.logger.Info("imported data",
		zap.Int("jobMatches", len(data.JobMatches)),
		zap.Int("applications", len(data.Applications)),
		zap.Int("jdAnalyses", len(data.JDAnalyses)))
	return nil
}

// importRequired lists the top-level objects every imported file must carry.
var importRequired = []string{"preferences", "resumeData"}

// decodeImport validates a current-version file strictly against the schema. Older
// files, which may carry numeric ids and loosely typed fields, only need the
// required top-level objects and are decoded leniently.
func decodeImport(raw []byte) (*types.Data, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	if version, _ := doc["version"].(float64); int(version) >= types.CurrentVersion {
		return decode(raw)
	}

	for _, key := range importRequired {
		if _, ok := doc[key].(map[string]any); !ok {
			return nil, fmt.Errorf("%s: object is required", key)
		}
	}
	data := types.NewData()
	if err := decodeLenient(doc, data); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	data.Normalize()
	return data, nil
}

// Stats summarizes how much data is stored.
type Stats struct {
	ResumeBytes          int        `json:"resumeBytes"`
	JobMatches           int        `json:"jobMatches"`
	Applications         int        `json:"applications"`
	JDAnalyses           int        `json:"jdAnalyses"`
	CompletedAssessments int        `json:"completedAssessments"`
	LastActivity         *time.Time `json:"lastActivity,omitempty"`
}

// Stats returns storage statistics for the current record.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	data := s.GetData(ctx)
	resume, err := json.Marshal(data.ResumeData)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to measure resume: %w", err)
	}
	return Stats{
		ResumeBytes:          len(resume),
		JobMatches:           len(data.JobMatches),
		Applications:         len(data.Applications),
		JDAnalyses:           len(data.JDAnalyses),
		CompletedAssessments: len(data.PracticeData.CompletedAssessments),
		LastActivity:         data.LastActivity,
	}, nil
}
