package project

import (
	"sort"
	"strings"
)

// FilterByVendor returns the projects whose metadata names vendor, compared
// case-insensitively, preserving order. An empty vendor keeps everything.
func FilterByVendor(projects []Project, vendor string) []Project {
	if vendor == "" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if strings.EqualFold(p.metadata.vendor, vendor) {
			out = append(out, p)
		}
	}
	return out
}

// VendorCount is the number of projects declaring one vendor.
type VendorCount struct {
	Vendor   string `json:"vendor"`
	Projects int    `json:"projects"`
}

// Vendors tallies the declared vendors, sorted by name. Projects on default
// metadata are skipped; a declared "unknown" vendor is counted.
func Vendors(projects []Project) []VendorCount {
	counts := make(map[string]int)
	for _, p := range projects {
		if p.metadata.IsDefault() {
			continue
		}
		counts[p.metadata.vendor]++
	}

	out := make([]VendorCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, VendorCount{Vendor: v, Projects: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out
}
