package pack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v2"

	"github.com/mrhapile/respack/pkg/types"
)

// ReportVersion is the index layout described by a report.
const ReportVersion = "v1"

type ReportBuilder struct {
	report types.PackReport
}

func NewReportBuilder(version string, ts time.Time) *ReportBuilder {
	return &ReportBuilder{
		report: types.PackReport{
			Version:     version,
			BuildID:     uuid.NewString(),
			GeneratedAt: ts,
			Resources:   []types.ReportEntry{},
		},
	}
}

func (rb *ReportBuilder) AddResource(rec types.IndexRecord, source string, data []byte) {
	hash := sha256.Sum256(data)
	entry := types.ReportEntry{
		Key:    rec.Key,
		Type:   rec.Type,
		Source: source,
		Offset: rec.Offset,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(hash[:]),
	}
	rb.report.Resources = append(rb.report.Resources, entry)
	rb.report.TotalResources++
}

func (rb *ReportBuilder) Build() types.PackReport {
	// Offsets change between runs, so only key and content feed the hash.
	hasher := sha256.New()
	for _, r := range rb.report.Resources {
		hasher.Write([]byte(r.Key))
		hasher.Write([]byte{0})
		hasher.Write([]byte(r.SHA256))
	}
	rb.report.ContentHash = hex.EncodeToString(hasher.Sum(nil))
	return rb.report
}

// WriteReport stores report as YAML at path.
func WriteReport(path string, report types.PackReport) error {
	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return ioError(err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (types.PackReport, error) {
	var report types.PackReport
	raw, err := os.ReadFile(path)
	if err != nil {
		return report, ioError(err)
	}
	if err := yaml.Unmarshal(raw, &report); err != nil {
		return report, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return report, nil
}
