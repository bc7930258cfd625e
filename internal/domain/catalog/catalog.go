// Package catalog is the read-only sector configuration store.
//
// A Catalog is built once by Load and never changes afterwards, so it is safe
// for concurrent readers.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	minTotalWeight = 0.95
	maxTotalWeight = 1.05
)

var (
	requiredSections     = []string{"sectors", "uae_settings", "recommendation_engine"}
	requiredSectorFields = []string{"name", "description", "risk_factors", "weight"}
)

//go:embed sectors.yaml
var defaultDocument []byte

// Sector is the configuration of one risk sector.
type Sector struct {
	ID          string   `koanf:"-" json:"id" yaml:"id"`
	Name        string   `koanf:"name" json:"name" yaml:"name"`
	Description string   `koanf:"description" json:"description" yaml:"description"`
	RiskFactors []string `koanf:"risk_factors" json:"risk_factors" yaml:"risk_factors"`
	Weight      float64  `koanf:"weight" json:"weight" yaml:"weight"`
}

// UAESettings holds the country-wide regulatory settings.
type UAESettings struct {
	RegulatoryAuthority         string             `koanf:"regulatory_authority" json:"regulatory_authority" yaml:"regulatory_authority"`
	ComplianceFrameworks        []string           `koanf:"compliance_frameworks" json:"compliance_frameworks" yaml:"compliance_frameworks"`
	EmergencyContactAuthorities []string           `koanf:"emergency_contact_authorities" json:"emergency_contact_authorities" yaml:"emergency_contact_authorities"`
	RiskToleranceLevels         map[string]float64 `koanf:"risk_tolerance_levels" json:"risk_tolerance_levels" yaml:"risk_tolerance_levels"`
}

// Catalog is the validated sector configuration.
type Catalog struct {
	k       *koanf.Koanf
	sectors map[string]Sector
	ids     []string
	uae     UAESettings
	engine  map[string]any
}

// Load reads, validates and decodes a catalog document. Without options the
// embedded default catalog is used.
func Load(_ context.Context, opts ...Option) (*Catalog, error) {
	o := loadOptions{data: defaultDocument}
	for _, opt := range opts {
		opt(&o)
	}

	var provider koanf.Provider = bytesProvider(o.data)
	source := "embedded catalog"
	if o.path != "" {
		provider = file.Provider(o.path)
		source = o.path
	}

	k := koanf.New(".")
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, source, err)
	}

	c := &Catalog{k: k}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.decode(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required sections, required sector fields and the weight sum.
func (c *Catalog) Validate() error {
	for _, section := range requiredSections {
		if !c.k.Exists(section) {
			return fmt.Errorf("%w: missing required section %q", ErrConfig, section)
		}
	}

	ids := c.k.MapKeys("sectors")
	if len(ids) == 0 {
		return fmt.Errorf("%w: section \"sectors\" defines no sectors", ErrConfig)
	}

	total := 0.0
	for _, id := range ids {
		for _, field := range requiredSectorFields {
			if !c.k.Exists(sectorKey(id, field)) {
				return fmt.Errorf("%w: sector %q missing required field %q", ErrConfig, id, field)
			}
		}
		w := c.k.Float64(sectorKey(id, "weight"))
		if w <= 0 {
			return fmt.Errorf("%w: sector %q weight must be positive, got %v", ErrConfig, id, w)
		}
		total += w
	}

	if total < minTotalWeight || total > maxTotalWeight {
		return fmt.Errorf("%w: sector weights sum to %.3f, should be within [%.2f, %.2f]",
			ErrConfig, total, minTotalWeight, maxTotalWeight)
	}
	return nil
}

func (c *Catalog) decode() error {
	sectors := make(map[string]Sector)
	if err := c.k.Unmarshal("sectors", &sectors); err != nil {
		return fmt.Errorf("%w: decode sectors: %w", ErrConfig, err)
	}
	for id, s := range sectors {
		s.ID = id
		sectors[id] = s
	}

	var uae UAESettings
	if err := c.k.Unmarshal("uae_settings", &uae); err != nil {
		return fmt.Errorf("%w: decode uae_settings: %w", ErrConfig, err)
	}

	ids := make([]string, 0, len(sectors))
	for id := range sectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c.sectors = sectors
	c.ids = ids
	c.uae = uae
	c.engine = c.k.Cut("recommendation_engine").Raw()
	return nil
}

// Sector returns the configuration of one sector.
func (c *Catalog) Sector(id string) (Sector, error) {
	s, ok := c.sectors[id]
	if !ok {
		return Sector{}, fmt.Errorf("%w: %s", ErrUnknownSector, id)
	}
	return s.clone(), nil
}

// Has reports whether id is a configured sector.
func (c *Catalog) Has(id string) bool {
	_, ok := c.sectors[id]
	return ok
}

// IDs returns the configured sector ids in ascending order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Sectors returns every sector ordered by id.
func (c *Catalog) Sectors() []Sector {
	out := make([]Sector, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.sectors[id].clone())
	}
	return out
}

// Weights maps sector id to aggregation weight.
func (c *Catalog) Weights() map[string]float64 {
	out := make(map[string]float64, len(c.sectors))
	for id, s := range c.sectors {
		out[id] = s.Weight
	}
	return out
}

// TotalWeight sums all sector weights.
func (c *Catalog) TotalWeight() float64 {
	total := 0.0
	for _, id := range c.ids {
		total += c.sectors[id].Weight
	}
	return math.Round(total*1e6) / 1e6
}

// UAESettings returns the country-wide settings.
func (c *Catalog) UAESettings() UAESettings {
	u := c.uae
	u.ComplianceFrameworks = append([]string(nil), u.ComplianceFrameworks...)
	u.EmergencyContactAuthorities = append([]string(nil), u.EmergencyContactAuthorities...)
	u.RiskToleranceLevels = make(map[string]float64, len(c.uae.RiskToleranceLevels))
	for k, v := range c.uae.RiskToleranceLevels {
		u.RiskToleranceLevels[k] = v
	}
	return u
}

// RecommendationEngine returns the pass-through recommendation_engine section.
func (c *Catalog) RecommendationEngine() map[string]any {
	out := make(map[string]any, len(c.engine))
	for k, v := range c.engine {
		out[k] = v
	}
	return out
}

// clone copies s so callers cannot reach the catalog's slices.
func (s Sector) clone() Sector {
	s.RiskFactors = append([]string(nil), s.RiskFactors...)
	return s
}

func sectorKey(id, field string) string {
	return "sectors." + id + "." + field
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("empty catalog document")
	}
	return b, nil
}

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytes provider does not support Read")
}
