package types

// Declaration is one parsed `[type]{key=...;path=...;}` manifest entry.
type Declaration struct {
	Type string
	Key  string
	Path string

	// Source is the manifest file the declaration came from, if any.
	Source string
	// Line is the 1-based line of the declaration's opening bracket.
	Line int
}

// IsEmpty reports whether none of the declared fields have been set yet.
func (d Declaration) IsEmpty() bool {
	return d.Type == "" && d.Key == "" && d.Path == ""
}

// IndexRecord locates one packed resource inside the data blob.
type IndexRecord struct {
	Key    string `yaml:"key"`
	Offset uint64 `yaml:"offset"`
	Length uint64 `yaml:"length"`
	Type   string `yaml:"type"`
}

// PackResult represents the output of a successful packing run.
type PackResult struct {
	DataPath      string     // Absolute path of the data blob
	IndexPath     string     // Absolute path of the index
	ReportPath    string     // Absolute path of the YAML report, empty if not written
	ResourceCount int        // Number of resources packed
	SizeBytes     int64      // Size of the data blob in bytes
	Report        PackReport // Report describing the packed resources
}
