package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/telerisk/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const validDocument = `
sectors:
  alpha:
    name: Alpha
    description: first sector
    risk_factors: [A1, A2, A3, A4]
    weight: 0.6
  beta:
    name: Beta
    description: second sector
    risk_factors: [B1]
    weight: 0.4
uae_settings:
  regulatory_authority: Test Authority
  compliance_frameworks: [Law A]
  emergency_contact_authorities: [Contact A]
  risk_tolerance_levels:
    low: 0.2
recommendation_engine:
  language: en
`

func TestLoadDefaultCatalog(t *testing.T) {
	Convey("Given the embedded sector catalog", t, func() {
		c, err := catalog.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then all ten sectors are configured in id order", func() {
			So(c.IDs(), ShouldResemble, []string{
				"customer_service_delivery",
				"cybersecurity",
				"human_resources",
				"it_software_development",
				"marketing_sales",
				"network_infrastructure",
				"regulatory_compliance",
				"research_development",
				"supply_chain_management",
				"telecom_services",
			})
			So(c.TotalWeight(), ShouldAlmostEqual, 1.0, 0.0001)
		})

		Convey("Then every sector carries the required fields", func() {
			for _, s := range c.Sectors() {
				So(s.ID, ShouldNotBeEmpty)
				So(s.Name, ShouldNotBeEmpty)
				So(s.Description, ShouldNotBeEmpty)
				So(len(s.RiskFactors), ShouldBeGreaterThanOrEqualTo, 3)
				So(s.Weight, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then the cybersecurity sector lists its canonical labels", func() {
			s, err := c.Sector("cybersecurity")
			So(err, ShouldBeNil)
			So(s.RiskFactors, ShouldContain, "Cyber attacks")
			So(s.RiskFactors, ShouldContain, "Insider threats")
		})

		Convey("Then the UAE settings and engine settings are exposed", func() {
			uae := c.UAESettings()
			So(uae.RegulatoryAuthority, ShouldContainSubstring, "UAE Telecommunications Regulatory Authority")
			So(uae.ComplianceFrameworks, ShouldNotBeEmpty)
			So(uae.EmergencyContactAuthorities, ShouldNotBeEmpty)
			So(uae.RiskToleranceLevels["critical"], ShouldEqual, 0.8)
			So(c.RecommendationEngine()["language"], ShouldEqual, "en")
		})

		Convey("Then mutating returned sectors does not leak back", func() {
			s, _ := c.Sector("alpha")
			s.RiskFactors[0] = "MUTATED"
			c.Sectors()[0].RiskFactors[1] = "MUTATED"

			again, _ := c.Sector("alpha")
			So(again.RiskFactors, ShouldResemble, []string{"A1", "A2", "A3", "A4"})
		})

		Convey("When looking up an unknown sector", func() {
			_, err := c.Sector("space_operations")

			Convey("Then ErrUnknownSector is returned", func() {
				So(errors.Is(err, catalog.ErrUnknownSector), ShouldBeTrue)
				So(c.Has("space_operations"), ShouldBeFalse)
			})
		})
	})
}

func TestLoadCustomCatalog(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-memory catalog document", t, func() {
		c, err := catalog.Load(ctx, catalog.WithData([]byte(validDocument)))
		So(err, ShouldBeNil)

		Convey("Then sectors, weights and pass-through settings are decoded", func() {
			So(c.IDs(), ShouldResemble, []string{"alpha", "beta"})
			So(c.Weights(), ShouldResemble, map[string]float64{"alpha": 0.6, "beta": 0.4})
			s, _ := c.Sector("alpha")
			So(s.RiskFactors, ShouldResemble, []string{"A1", "A2", "A3", "A4"})
		})

		Convey("Then mutating the returned settings does not leak back", func() {
			engine := c.RecommendationEngine()
			engine["language"] = "ar"
			So(c.RecommendationEngine()["language"], ShouldEqual, "en")
		})

		Convey("Then mutating returned sectors does not leak back", func() {
			s, _ := c.Sector("alpha")
			s.RiskFactors[0] = "MUTATED"
			c.Sectors()[0].RiskFactors[1] = "MUTATED"

			again, _ := c.Sector("alpha")
			So(again.RiskFactors, ShouldResemble, []string{"A1", "A2", "A3", "A4"})
		})
	})

	Convey("Given a catalog file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "sectors.yaml")
		So(os.WriteFile(path, []byte(validDocument), 0o600), ShouldBeNil)

		c, err := catalog.Load(ctx, catalog.WithFile(path))

		Convey("Then it loads the same way", func() {
			So(err, ShouldBeNil)
			So(c.Has("beta"), ShouldBeTrue)
		})
	})
}

func TestCatalogValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		doc     string
		message string
	}{
		{
			name:    "missing section",
			doc:     "sectors:\n  a: {name: A, description: d, risk_factors: [x], weight: 1.0}\nuae_settings: {regulatory_authority: r}\n",
			message: `missing required section "recommendation_engine"`,
		},
		{
			name:    "missing sector field",
			doc:     "sectors:\n  a: {name: A, risk_factors: [x], weight: 1.0}\nuae_settings: {regulatory_authority: r}\nrecommendation_engine: {language: en}\n",
			message: `sector "a" missing required field "description"`,
		},
		{
			name:    "weights out of range",
			doc:     "sectors:\n  a: {name: A, description: d, risk_factors: [x], weight: 0.5}\n  b: {name: B, description: d, risk_factors: [y], weight: 0.3}\nuae_settings: {regulatory_authority: r}\nrecommendation_engine: {language: en}\n",
			message: "sector weights sum to 0.800",
		},
		{
			name:    "non-positive weight",
			doc:     "sectors:\n  a: {name: A, description: d, risk_factors: [x], weight: 1.0}\n  b: {name: B, description: d, risk_factors: [y], weight: 0}\nuae_settings: {regulatory_authority: r}\nrecommendation_engine: {language: en}\n",
			message: `sector "b" weight must be positive`,
		},
	}

	Convey("Given invalid catalog documents", t, func() {
		for _, tc := range cases {
			tc := tc
			Convey("When the document has a "+tc.name, func() {
				c, err := catalog.Load(ctx, catalog.WithData([]byte(tc.doc)))

				Convey("Then loading fails with ErrConfig naming the constraint", func() {
					So(c, ShouldBeNil)
					So(errors.Is(err, catalog.ErrConfig), ShouldBeTrue)
					So(err.Error(), ShouldContainSubstring, tc.message)
				})
			})
		}

		Convey("When the document is malformed YAML", func() {
			_, err := catalog.Load(ctx, catalog.WithData([]byte("sectors: [unclosed")))

			Convey("Then ErrConfig is returned", func() {
				So(errors.Is(err, catalog.ErrConfig), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := catalog.Load(ctx, catalog.WithFile("/non/existent/sectors.yaml"))

			Convey("Then ErrConfig is returned", func() {
				So(errors.Is(err, catalog.ErrConfig), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "/non/existent/sectors.yaml")
			})
		})
	})
}
