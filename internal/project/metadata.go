package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the reserved name of the project metadata declaration,
// matched case-insensitively against the full repository path.
const MetadataFile = ".opf.yml"

// Metadata is the declared identity of a project: its canonical name and the
// vendor (organisation, individual or parent project) that owns it.
type Metadata struct {
	name     string
	vendor   string
	fallback bool
}

var defaultMetadata = Metadata{name: Unknown, vendor: Unknown, fallback: true}

// DefaultMetadata returns the shared "unknown/unknown" value used when a
// repository declares no metadata.
func DefaultMetadata() Metadata {
	return defaultMetadata
}

// NewMetadata validates and returns a declared Metadata value.
func NewMetadata(name, vendor string) (Metadata, error) {
	if name == "" {
		return Metadata{}, invalid("metadata name", "empty")
	}
	if vendor == "" {
		return Metadata{}, invalid("metadata vendor", "empty")
	}
	return Metadata{name: name, vendor: vendor}, nil
}

func (m Metadata) Name() string   { return m.name }
func (m Metadata) Vendor() string { return m.vendor }

// IsDefault reports whether m is the default value rather than one parsed
// from a document, even if a document declared "unknown" for both fields.
func (m Metadata) IsDefault() bool { return m.fallback }

func (m Metadata) isZero() bool { return m.name == "" || m.vendor == "" }

// MarshalJSON implements json.Marshaler.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string `json:"name"`
		Vendor string `json:"vendor"`
	}{m.name, m.vendor})
}

// metadataDocument mirrors the keys read from a metadata file. Unknown keys
// are ignored.
type metadataDocument struct {
	Name   string `yaml:"name"`
	Vendor string `yaml:"vendor"`
}

// ParseMetadata parses a metadata document. Literal tabs are expanded to two
// spaces first since they are illegal YAML indentation and a common slip in
// hand-written files.
func ParseMetadata(raw string) (Metadata, error) {
	if raw == "" {
		return Metadata{}, invalid("metadata document", "empty")
	}

	var doc metadataDocument
	if err := yaml.Unmarshal([]byte(strings.ReplaceAll(raw, "\t", "  ")), &doc); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	switch {
	case doc.Name == "" && doc.Vendor == "":
		return Metadata{}, fmt.Errorf("%w: name and vendor missing", ErrMalformedMetadata)
	case doc.Name == "":
		return Metadata{}, fmt.Errorf("%w: name missing", ErrMalformedMetadata)
	case doc.Vendor == "":
		return Metadata{}, fmt.Errorf("%w: vendor missing", ErrMalformedMetadata)
	}
	return Metadata{name: doc.Name, vendor: doc.Vendor}, nil
}
