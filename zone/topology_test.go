package zone_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/zone"
)

func TestTopology_Validate(t *testing.T) {
	cases := []struct {
		name string
		top  zone.Topology
		ok   bool
	}{
		{"Default", zone.DefaultTopology(), true},
		{"Empty", zone.Topology{}, true},
		{"MissingID", zone.Topology{Zones: []zone.Spec{{Center: grid.Cell{}}}}, false},
		{"Duplicate", zone.Topology{Zones: []zone.Spec{{ID: "A"}, {ID: "A"}}}, false},
		{"RiskTooHigh", zone.Topology{Zones: []zone.Spec{{ID: "A", AvgRisk: 1.5}}}, false},
		{"RiskNegative", zone.Topology{Zones: []zone.Spec{{ID: "A", AvgRisk: -0.1}}}, false},
		{"NegativeAgo", zone.Topology{Zones: []zone.Spec{{ID: "A", InspectedAgo: -time.Second}}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.top.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, zone.ErrBadTopology)
		})
	}
}

func TestNewRegistry_RejectsBadTopology(t *testing.T) {
	_, err := zone.NewRegistry(zone.Topology{Zones: []zone.Spec{{ID: "A"}, {ID: "A"}}}, time.Now())
	require.ErrorIs(t, err, zone.ErrBadTopology)
}

func TestTopology_CheckGrid(t *testing.T) {
	g := grid.MustNew([][]int{
		{0, 0, 0},
		{0, 1, 0},
	})
	top := zone.Topology{Zones: []zone.Spec{{ID: "ok", Center: grid.Cell{Row: 0, Col: 2}}}}
	require.NoError(t, top.CheckGrid(g))

	top.Zones = append(top.Zones, zone.Spec{ID: "wall", Center: grid.Cell{Row: 1, Col: 1}})
	require.ErrorIs(t, top.CheckGrid(g), zone.ErrBadTopology)

	top.Zones = []zone.Spec{{ID: "far", Center: grid.Cell{Row: 9, Col: 9}}}
	require.ErrorIs(t, top.CheckGrid(g), zone.ErrBadTopology)
}

func TestLoadTopology(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
zones:
  - id: dock
    center: {row: 0, col: 0}
    visited: true
  - id: boiler
    center: {row: 3, col: 7}
    avg_risk: 0.6
    inspected_ago: 90m
`), 0o644))

	top, err := zone.LoadTopology(path)
	require.NoError(t, err)
	require.Len(t, top.Zones, 2)
	assert.Equal(t, zone.ID("boiler"), top.Zones[1].ID)
	assert.Equal(t, grid.Cell{Row: 3, Col: 7}, top.Zones[1].Center)
	assert.Equal(t, 0.6, top.Zones[1].AvgRisk)
	assert.Equal(t, 90*time.Minute, top.Zones[1].InspectedAgo)
	assert.True(t, top.Zones[0].Visited)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("zones:\n  - id: x\n    avg_risk: 3\n"), 0o644))
	_, err = zone.LoadTopology(bad)
	require.ErrorIs(t, err, zone.ErrBadTopology)

	_, err = zone.LoadTopology(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
