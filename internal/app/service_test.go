package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	service "github.com/okian/telerisk/internal/app"
	"github.com/okian/telerisk/internal/config"
	"github.com/okian/telerisk/internal/domain/batch"
	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
	"github.com/okian/telerisk/internal/domain/sectors"
	"github.com/okian/telerisk/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

type countingScorer struct {
	sectors.Scorer
	calls *int32
}

func (c countingScorer) Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error) {
	atomic.AddInt32(c.calls, 1)
	return c.Scorer.Assess(ctx, p)
}

type failingScorer struct {
	sectors.Scorer
}

func (failingScorer) Assess(context.Context, model.ProjectData) (model.RiskAssessment, error) {
	return model.RiskAssessment{}, errors.New("model unavailable")
}

type blockingScorer struct {
	sectors.Scorer
	release <-chan struct{}
}

func (b blockingScorer) Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error) {
	<-b.release
	return b.Scorer.Assess(ctx, p)
}

func defaultCatalog() *catalog.Catalog {
	c, err := catalog.Load(context.Background())
	So(err, ShouldBeNil)
	return c
}

func scorerFor(c *catalog.Catalog, id string) sectors.Scorer {
	sec, err := c.Sector(id)
	So(err, ShouldBeNil)
	return sectors.New(sec)
}

func TestAssessProject(t *testing.T) {
	Convey("Given a service over the default catalog", t, func() {
		c := defaultCatalog()
		var calls int32
		fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		svc := service.New(c,
			service.WithScorer(sectors.CybersecurityID, countingScorer{Scorer: scorerFor(c, sectors.CybersecurityID), calls: &calls}),
			service.WithClock(func() time.Time { return fixed }),
		)
		ctx := context.Background()

		Convey("When the network upgrade sample is assessed", func() {
			p, err := svc.SampleProject(service.SampleNetworkUpgrade)
			So(err, ShouldBeNil)
			rep, err := svc.AssessProject(ctx, p, nil)
			So(err, ShouldBeNil)

			Convey("Then the report is consistent", func() {
				So(rep.OverallRisk, ShouldBeBetweenOrEqual, 0, 1)
				So(rep.Category, ShouldEqual, report.Categorize(rep.OverallRisk))
				So(rep.GeneratedAt, ShouldEqual, fixed)
				So(len(rep.TopRisks), ShouldBeLessThanOrEqualTo, 10)
				So(len(rep.PriorityRecommendations), ShouldBeLessThanOrEqualTo, 15)
				for i := 1; i < len(rep.TopRisks); i++ {
					So(rep.TopRisks[i-1].RiskLevel, ShouldBeGreaterThanOrEqualTo, rep.TopRisks[i].RiskLevel)
				}
			})

			Convey("Then the relevant and mandatory sectors are assessed", func() {
				So(rep.Assessments, ShouldContainKey, sectors.NetworkInfrastructureID)
				So(rep.Assessments, ShouldContainKey, sectors.CybersecurityID)
				So(rep.Assessments, ShouldContainKey, sectors.RegulatoryComplianceID)
				So(rep.Assessments[sectors.NetworkInfrastructureID].RiskFactors, ShouldContain, "Network congestion")
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			})

			Convey("Then assessing again gives the same scores", func() {
				again, err := svc.AssessProject(ctx, p, nil)
				So(err, ShouldBeNil)
				So(again.OverallRisk, ShouldEqual, rep.OverallRisk)
				So(again.TopRisks, ShouldResemble, rep.TopRisks)
			})
		})

		Convey("When an explicit sector filter is given", func() {
			p, _ := svc.SampleProject(service.SampleCustomerPortal)
			rep, err := svc.AssessProject(ctx, p, []string{"marketing_sales"})
			So(err, ShouldBeNil)

			Convey("Then only that sector is assessed and the overall risk equals it", func() {
				So(rep.Assessments, ShouldHaveLength, 1)
				So(rep.OverallRisk, ShouldAlmostEqual, rep.Assessments["marketing_sales"].RiskLevel, 1e-12)
			})
		})

		Convey("When the project is invalid in several ways", func() {
			p := model.ProjectData{ComplexityScore: 1.5}
			rep, err := svc.AssessProject(ctx, p, nil)

			Convey("Then every violation is reported and no scorer runs", func() {
				So(rep, ShouldBeNil)
				So(errors.Is(err, model.ErrInvalidProject), ShouldBeTrue)
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Issues, ShouldContain, "Project ID is required")
				So(verr.Issues, ShouldContain, "Project budget must be greater than 0")
				So(verr.Issues, ShouldContain, "Complexity score must be between 0.0 and 1.0")
				So(atomic.LoadInt32(&calls), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service whose regulatory scorer fails", t, func() {
		c := defaultCatalog()
		svc := service.New(c, service.WithScorer(sectors.RegulatoryComplianceID, failingScorer{Scorer: scorerFor(c, sectors.RegulatoryComplianceID)}))
		p, _ := svc.SampleProject(service.SampleCybersecurityEnhancement)
		rep, err := svc.AssessProject(context.Background(), p, nil)

		Convey("Then the report completes with a fallback for that sector", func() {
			So(err, ShouldBeNil)
			reg := rep.Assessments[sectors.RegulatoryComplianceID]
			So(reg.Fallback(), ShouldBeTrue)
			So(reg.RiskLevel, ShouldEqual, 0.5)
			So(rep.Assessments[sectors.CybersecurityID].Fallback(), ShouldBeFalse)
		})
	})
}

func TestSamplesAndInformation(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(defaultCatalog())

		Convey("Every sample kind is a valid project", func() {
			So(service.SampleKinds(), ShouldResemble, []string{"customer_portal", "cybersecurity_enhancement", "network_upgrade"})
			for _, kind := range service.SampleKinds() {
				p, err := svc.SampleProject(kind)
				So(err, ShouldBeNil)
				So(p.Validate(), ShouldBeNil)
			}
		})

		Convey("An unknown sample kind lists the available kinds", func() {
			_, err := svc.SampleProject("satellite")
			So(errors.Is(err, service.ErrUnknownSample), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "network_upgrade")
		})

		Convey("Sector information covers every configured sector", func() {
			info := svc.SectorInformation(context.Background())
			So(info, ShouldHaveLength, 10)
			implemented := 0
			for _, s := range info {
				So(s.UAEContext, ShouldBeTrue)
				So(s.RiskFactorsCount, ShouldEqual, len(s.RiskFactors))
				if s.Implemented {
					implemented++
				}
			}
			So(implemented, ShouldEqual, 3)
		})

		Convey("Mutating sector information leaves later assessments untouched", func() {
			for _, s := range svc.SectorInformation(context.Background()) {
				if s.ID == "human_resources" {
					s.RiskFactors[0] = "MUTATED"
				}
			}
			p, _ := svc.SampleProject(service.SampleCustomerPortal)
			rep, err := svc.AssessProject(context.Background(), p, []string{"human_resources"})
			So(err, ShouldBeNil)
			So(rep.Assessments["human_resources"].RiskFactors, ShouldNotContain, "MUTATED")

			sec, err := svc.Catalog().Sector("human_resources")
			So(err, ShouldBeNil)
			So(sec.RiskFactors, ShouldNotContain, "MUTATED")
		})

		Convey("The UAE context reflects the catalog settings", func() {
			uae := svc.UAEContext(context.Background())
			So(uae.RegulatoryEnvironment.PrimaryRegulator, ShouldEqual, "UAE Telecommunications Regulatory Authority (TRA)")
			So(uae.RiskTolerance["critical"], ShouldEqual, 0.8)
			So(uae.RecommendationEngine["language"], ShouldEqual, "en")
			So(uae.SectorsOverview, ShouldHaveLength, 10)
		})

		Convey("Stats describe the configuration", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["sectors"], ShouldEqual, 10)
		})
	})
}

func TestAssessBatch(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New(defaultCatalog())
		_, err := svc.AssessBatch(context.Background(), nil)
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
	})

	Convey("Given a started service", t, func() {
		svc := service.New(defaultCatalog(), service.WithWorkerCount(2))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		network, _ := svc.SampleProject(service.SampleNetworkUpgrade)
		portal, _ := svc.SampleProject(service.SampleCustomerPortal)

		Convey("When a batch mixes valid, duplicate and invalid projects", func() {
			res, err := svc.AssessBatch(ctx, []batch.Request{
				{Project: network},
				{Project: portal, Sectors: []string{"customer_service_delivery"}},
				{Project: network},
				{Project: model.ProjectData{ProjectID: "BROKEN"}},
			})
			So(err, ShouldBeNil)

			Convey("Then results come back in request order", func() {
				So(res.BatchID, ShouldNotBeEmpty)
				So(res.Results, ShouldHaveLength, 4)
				for i, r := range res.Results {
					So(r.Index, ShouldEqual, i)
				}

				So(res.Results[0].Err, ShouldBeNil)
				So(res.Results[0].Report.Project.ProjectID, ShouldEqual, "UAE_NET_2024_001")

				So(res.Results[1].Err, ShouldBeNil)
				So(res.Results[1].Report.Assessments, ShouldHaveLength, 1)

				So(res.Results[2].Duplicate, ShouldBeTrue)
				So(errors.Is(res.Results[2].Err, service.ErrDuplicateProject), ShouldBeTrue)
				So(res.Results[2].Report, ShouldBeNil)

				So(errors.Is(res.Results[3].Err, model.ErrInvalidProject), ShouldBeTrue)
			})

			Convey("Then nothing is retained for the next batch", func() {
				again, err := svc.AssessBatch(ctx, []batch.Request{{Project: network}})
				So(err, ShouldBeNil)
				So(again.Results[0].Duplicate, ShouldBeFalse)
				So(again.BatchID, ShouldNotEqual, res.BatchID)
				So(svc.GetStats()["maxBatchSize"], ShouldEqual, 500)
			})
		})
	})

	Convey("Given a service with a small batch limit", t, func() {
		svc := service.New(defaultCatalog(), service.WithWorkerCount(2), service.WithQueueSize(64), service.WithMaxBatchSize(40))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		network, _ := svc.SampleProject(service.SampleNetworkUpgrade)
		withID := func(id string) batch.Request {
			p := network
			p.ProjectID = id
			return batch.Request{Project: p, Sectors: []string{sectors.CybersecurityID}}
		}

		Convey("When a repeated id follows many distinct ids", func() {
			reqs := []batch.Request{withID("a"), withID("b"), withID("c")}
			for i := 0; i < 30; i++ {
				reqs = append(reqs, withID(fmt.Sprintf("p-%d", i)))
			}
			reqs = append(reqs, withID("a"), withID("b"))

			res, err := svc.AssessBatch(ctx, reqs)
			So(err, ShouldBeNil)

			Convey("Then every repeat is still reported as a duplicate", func() {
				last := len(reqs) - 1
				So(res.Results[0].Duplicate, ShouldBeFalse)
				So(res.Results[0].Err, ShouldBeNil)
				for _, i := range []int{last - 1, last} {
					So(res.Results[i].Duplicate, ShouldBeTrue)
					So(errors.Is(res.Results[i].Err, service.ErrDuplicateProject), ShouldBeTrue)
					So(res.Results[i].Report, ShouldBeNil)
				}
				for i := 3; i < last-1; i++ {
					So(res.Results[i].Duplicate, ShouldBeFalse)
				}
			})
		})

		Convey("When the batch exceeds the limit", func() {
			reqs := make([]batch.Request, 41)
			for i := range reqs {
				reqs[i] = withID(fmt.Sprintf("p-%d", i))
			}
			res, err := svc.AssessBatch(ctx, reqs)

			Convey("Then it is rejected before any work is queued", func() {
				So(res, ShouldBeNil)
				So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
				So(svc.GetStats()["maxBatchSize"], ShouldEqual, 40)
			})
		})
	})

	Convey("Given a one-slot queue and a blocked worker", t, func() {
		c := defaultCatalog()
		release := make(chan struct{})
		svc := service.New(c,
			service.WithWorkerCount(1),
			service.WithQueueSize(1),
			service.WithScorer(sectors.CybersecurityID, blockingScorer{Scorer: scorerFor(c, sectors.CybersecurityID), release: release}),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		base, _ := svc.SampleProject(service.SampleCybersecurityEnhancement)
		reqs := make([]batch.Request, 10)
		for i := range reqs {
			p := base
			p.ProjectID = fmt.Sprintf("SEC-%d", i)
			reqs[i] = batch.Request{Project: p, Sectors: []string{sectors.CybersecurityID}}
		}

		time.AfterFunc(100*time.Millisecond, func() { close(release) })
		res, err := svc.AssessBatch(context.Background(), reqs)
		So(err, ShouldBeNil)

		Convey("Then overflowing items report backpressure and the rest complete", func() {
			rejected, completed := 0, 0
			for _, r := range res.Results {
				switch {
				case errors.Is(r.Err, service.ErrBackpressure):
					rejected++
				case r.Err == nil:
					completed++
				}
			}
			So(rejected, ShouldBeGreaterThanOrEqualTo, 7)
			So(rejected+completed, ShouldEqual, 10)
		})
	})

	Convey("Given a batch timeout shorter than the scorer", t, func() {
		c := defaultCatalog()
		release := make(chan struct{})
		svc := service.New(c,
			service.WithWorkerCount(1),
			service.WithBatchTimeout(50*time.Millisecond),
			service.WithScorer(sectors.CybersecurityID, blockingScorer{Scorer: scorerFor(c, sectors.CybersecurityID), release: release}),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		defer close(release)

		p, _ := svc.SampleProject(service.SampleCybersecurityEnhancement)
		res, err := svc.AssessBatch(context.Background(), []batch.Request{{Project: p, Sectors: []string{sectors.CybersecurityID}}})

		Convey("Then unfinished items carry the deadline error", func() {
			So(err, ShouldBeNil)
			So(errors.Is(res.Results[0].Err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("Given a configuration with tight report limits", t, func() {
		cfg := config.New()
		cfg.TopRiskLimit = 2
		cfg.RecommendationLimit = 3

		svc, err := service.FromConfig(context.Background(), cfg)
		So(err, ShouldBeNil)

		p, _ := svc.SampleProject(service.SampleNetworkUpgrade)
		rep, err := svc.AssessProject(context.Background(), p, nil)
		So(err, ShouldBeNil)

		Convey("Then the reports honor the limits", func() {
			So(rep.TopRisks, ShouldHaveLength, 2)
			So(rep.PriorityRecommendations, ShouldHaveLength, 3)
			So(svc.GetStats()["topRiskLimit"], ShouldEqual, 2)
		})
	})

	Convey("Given a missing sectors file", t, func() {
		cfg := config.New()
		cfg.SectorsFile = "/nonexistent/sectors.yaml"

		_, err := service.FromConfig(context.Background(), cfg)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldStartWith, "load sector catalog")
	})
}
