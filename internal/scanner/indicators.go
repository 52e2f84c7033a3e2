// Package scanner derives health indicators from a repository file listing
// and scores the resulting project records.
package scanner

import (
	"path"
	"strings"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

const (
	readmeBase  = "readme"
	licenseBase = "license"

	readmeAnchor = "#readme"
	blobPrefix   = "/blob/master/"
)

// Scan walks paths in order and records the location of the readme, license
// and metadata declaration. Readme and license match on the base name without
// its extension; the metadata file matches the full path. Matching ignores
// case, and a later match overwrites an earlier one, so listing order decides
// ties.
func Scan(paths []string, repoURL string) project.Indicators {
	var ind project.Indicators
	for _, p := range paths {
		switch base := baseName(p); {
		case strings.EqualFold(base, readmeBase):
			ind.ReadMeURL = repoURL + readmeAnchor
		case strings.EqualFold(base, licenseBase):
			ind.LicenseURL = repoURL + blobPrefix + p
		case strings.EqualFold(p, project.MetadataFile):
			ind.MetadataURL = repoURL + blobPrefix + p
		}
	}
	return ind
}

// MetadataPath returns the listed path that Scan reports as the metadata
// declaration, in the case the listing spells it, or "" when there is none.
func MetadataPath(paths []string) string {
	found := ""
	for _, p := range paths {
		if strings.EqualFold(p, project.MetadataFile) {
			found = p
		}
	}
	return found
}

// baseName strips the directory and the final extension, so "docs/README.md"
// and "README" both yield "README".
func baseName(p string) string {
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}
