package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVendor(t *testing.T, name, vendor string) Project {
	t.Helper()
	id := validIdentity()
	id.Name = name
	b, err := NewBuilder(id, WithClock(fixedClock))
	require.NoError(t, err)
	if vendor != "" {
		m, err := NewMetadata(name, vendor)
		require.NoError(t, err)
		require.NoError(t, b.SetMetadata(m))
	}
	b.SetIndicators(Indicators{})
	b.SetCI(CiInfo{})
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

func names(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func TestFilterByVendor(t *testing.T) {
	projects := []Project{
		withVendor(t, "jhove", "opf"),
		withVendor(t, "fido", "OPF"),
		withVendor(t, "droid", "tna"),
		withVendor(t, "scratch", ""),
	}

	assert.Equal(t, []string{"jhove", "fido"}, names(FilterByVendor(projects, "opf")))
	assert.Equal(t, []string{"droid"}, names(FilterByVendor(projects, "tna")))
	assert.Empty(t, FilterByVendor(projects, "nobody"))
	assert.Len(t, FilterByVendor(projects, ""), 4)
}

func TestVendors_SkipsDefaultMetadata(t *testing.T) {
	projects := []Project{
		withVendor(t, "jhove", "opf"),
		withVendor(t, "scratch", ""),
		withVendor(t, "fido", "opf"),
		withVendor(t, "legacy", Unknown),
		withVendor(t, "droid", "tna"),
	}

	got := Vendors(projects)
	assert.Equal(t, []VendorCount{
		{Vendor: "opf", Projects: 2},
		{Vendor: "tna", Projects: 1},
		{Vendor: Unknown, Projects: 1},
	}, got)
}

func TestVendors_Empty(t *testing.T) {
	assert.Empty(t, Vendors(nil))
	assert.Empty(t, Vendors([]Project{withVendor(t, "scratch", "")}))
}
