package types

import "time"

// PackReport describes the contents of a packed data blob.
type PackReport struct {
	// Version is the schema version of the index layout.
	Version string `yaml:"version"`

	// BuildID uniquely identifies the packing run.
	BuildID string `yaml:"buildId"`

	// GeneratedAt is the timestamp when the blob was packed.
	GeneratedAt time.Time `yaml:"generatedAt"`

	// TotalResources is the count of resources in the blob.
	TotalResources int `yaml:"totalResources"`

	// Resources lists every packed resource in index order.
	Resources []ReportEntry `yaml:"resources"`

	// ContentHash is the SHA256 over the concatenated per-resource hashes.
	ContentHash string `yaml:"contentHash"`
}

// ReportEntry represents a single resource inside the blob.
type ReportEntry struct {
	Key    string `yaml:"key"`
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
	Offset uint64 `yaml:"offset"`
	Size   int64  `yaml:"size"`

	// SHA256 is the checksum of the resource content.
	SHA256 string `yaml:"sha256"`
}
