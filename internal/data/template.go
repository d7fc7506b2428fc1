package data

import (
	"fmt"
	"hash/fnv"
	"os"
	"sort"

	"github.com/gridhaven/server/internal/world"
	"gopkg.in/yaml.v3"
)

// BuildingTemplate holds static data for a building type loaded from YAML.
type BuildingTemplate struct {
	TemplateID       int32  `yaml:"template_id"`
	Name             string `yaml:"name"`
	Category         string `yaml:"category"` // habitation, exchange, fabrication
	Density          string `yaml:"density"`  // low, high
	Width            int32  `yaml:"width"`
	Height           int32  `yaml:"height"`
	BaseCapacity     int32  `yaml:"base_capacity"`
	MaxLevel         int16  `yaml:"max_level"`
	ConstructionTick int64  `yaml:"construction_ticks"`
	ConstructionCost int64  `yaml:"construction_cost"`
	MinDesirability  int32  `yaml:"min_desirability"`
}

// ZoneCategory parses the template's category string.
func (t *BuildingTemplate) ZoneCategory() (world.ZoneCategory, error) {
	switch t.Category {
	case "habitation":
		return world.ZoneHabitation, nil
	case "exchange":
		return world.ZoneExchange, nil
	case "fabrication":
		return world.ZoneFabrication, nil
	}
	return 0, fmt.Errorf("template %d: unknown category %q", t.TemplateID, t.Category)
}

// DensityTier parses the template's density string.
func (t *BuildingTemplate) DensityTier() (world.DensityTier, error) {
	switch t.Density {
	case "low":
		return world.DensityLow, nil
	case "high":
		return world.DensityHigh, nil
	}
	return 0, fmt.Errorf("template %d: unknown density %q", t.TemplateID, t.Density)
}

// SpawnSpec converts the template into creation parameters.
func (t *BuildingTemplate) SpawnSpec() world.SpawnSpec {
	cat, _ := t.ZoneCategory()
	den, _ := t.DensityTier()
	return world.SpawnSpec{
		TemplateID:       t.TemplateID,
		Category:         cat,
		Density:          den,
		Width:            t.Width,
		Height:           t.Height,
		BaseCapacity:     t.BaseCapacity,
		MaxLevel:         t.MaxLevel,
		ConstructionTick: t.ConstructionTick,
		ConstructionCost: t.ConstructionCost,
	}
}

type templateListFile struct {
	Templates []BuildingTemplate `yaml:"templates"`
}

type bucketKey struct {
	cat world.ZoneCategory
	den world.DensityTier
}

// TemplateTable holds all building templates indexed by id and bucketed by
// (category, density) for selection.
type TemplateTable struct {
	byID    map[int32]*BuildingTemplate
	buckets map[bucketKey][]*BuildingTemplate
}

// LoadTemplateTable reads the building template list from YAML.
func LoadTemplateTable(path string) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template list %s: %w", path, err)
	}
	var file templateListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse template list %s: %w", path, err)
	}
	return NewTemplateTable(file.Templates)
}

// NewTemplateTable builds a table from in-memory templates (test fixtures).
func NewTemplateTable(templates []BuildingTemplate) (*TemplateTable, error) {
	t := &TemplateTable{
		byID:    make(map[int32]*BuildingTemplate, len(templates)),
		buckets: make(map[bucketKey][]*BuildingTemplate),
	}
	for i := range templates {
		tpl := &templates[i]
		if tpl.Width <= 0 || tpl.Height <= 0 {
			return nil, fmt.Errorf("template %d: invalid footprint %dx%d", tpl.TemplateID, tpl.Width, tpl.Height)
		}
		cat, err := tpl.ZoneCategory()
		if err != nil {
			return nil, err
		}
		den, err := tpl.DensityTier()
		if err != nil {
			return nil, err
		}
		if tpl.MaxLevel < world.MinLevel || tpl.MaxLevel > world.MaxLevel {
			return nil, fmt.Errorf("template %d: max_level %d out of range", tpl.TemplateID, tpl.MaxLevel)
		}
		t.byID[tpl.TemplateID] = tpl
		key := bucketKey{cat, den}
		t.buckets[key] = append(t.buckets[key], tpl)
	}
	// Stable bucket order so selection only depends on (tick, position, neighbors).
	for _, bucket := range t.buckets {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].TemplateID < bucket[j].TemplateID
		})
	}
	return t, nil
}

func (t *TemplateTable) Get(id int32) (*BuildingTemplate, bool) {
	tpl, ok := t.byID[id]
	return tpl, ok
}

func (t *TemplateTable) Count() int {
	return len(t.byID)
}

// Select picks a template for a spawn. Deterministic given tick, position
// and neighbor template ids: candidates not matching any orthogonal
// neighbor are preferred (variety), and the final pick is a hash over
// (tick, x, y). Returns false when no template fits the zone and
// desirability.
func (t *TemplateTable) Select(cat world.ZoneCategory, den world.DensityTier, desirability int32, x, y int32, tick int64, neighbors []int32) (*BuildingTemplate, bool) {
	bucket := t.buckets[bucketKey{cat, den}]
	if len(bucket) == 0 {
		return nil, false
	}

	eligible := make([]*BuildingTemplate, 0, len(bucket))
	for _, tpl := range bucket {
		if desirability >= tpl.MinDesirability {
			eligible = append(eligible, tpl)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}

	fresh := eligible[:0:0]
	for _, tpl := range eligible {
		if !contains(neighbors, tpl.TemplateID) {
			fresh = append(fresh, tpl)
		}
	}
	if len(fresh) > 0 {
		eligible = fresh
	}

	h := fnv.New64a()
	var buf [20]byte
	put64(buf[0:8], uint64(tick))
	put32(buf[8:12], uint32(x))
	put32(buf[12:16], uint32(y))
	put32(buf[16:20], uint32(len(neighbors)))
	h.Write(buf[:])
	return eligible[h.Sum64()%uint64(len(eligible))], true
}

func contains(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func put32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func put64(b []byte, v uint64) {
	put32(b[0:4], uint32(v))
	put32(b[4:8], uint32(v>>32))
}
