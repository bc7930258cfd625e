package model_test

import (
	"errors"
	"testing"

	"github.com/okian/telerisk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validProject() model.ProjectData {
	return model.ProjectData{
		ProjectID:       "UAE_TEST_001",
		Description:     "Fiber backbone upgrade",
		Budget:          2_000_000,
		TimelineDays:    180,
		ComplexityScore: 0.5,
		Stakeholders:    []string{"Operator"},
		Technologies:    []string{"Fiber Optic"},
	}
}

func TestProjectValidate(t *testing.T) {
	Convey("Given project data", t, func() {
		Convey("When every field is valid", func() {
			p := validProject()

			Convey("Then validation passes", func() {
				So(p.Validate(), ShouldBeNil)
			})
		})

		Convey("When complexity sits on the range boundaries", func() {
			p := validProject()
			p.ComplexityScore = 0
			So(p.Validate(), ShouldBeNil)
			p.ComplexityScore = 1
			So(p.Validate(), ShouldBeNil)
		})

		Convey("When every constraint is violated at once", func() {
			p := model.ProjectData{
				Budget:          -1,
				TimelineDays:    0,
				ComplexityScore: 1.5,
				Stakeholders:    []string{},
			}
			err := p.Validate()

			Convey("Then all violations are listed in one error", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Issues, ShouldResemble, []string{
					"Project ID is required",
					"Project description is required",
					"Project budget must be greater than 0",
					"Project timeline must be greater than 0 days",
					"Complexity score must be between 0.0 and 1.0",
					"At least one technology should be specified",
					"At least one stakeholder should be specified",
				})
				So(errors.Is(err, model.ErrInvalidProject), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "project data validation failed: Project ID is required; ")
			})
		})

		Convey("When only the lists are empty", func() {
			p := validProject()
			p.Technologies = nil
			p.Stakeholders = []string{}
			err := p.Validate()

			Convey("Then both list violations are reported", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Issues, ShouldResemble, []string{
					"At least one technology should be specified",
					"At least one stakeholder should be specified",
				})
			})
		})

		Convey("When complexity is negative", func() {
			p := validProject()
			p.ComplexityScore = -0.1
			err := p.Validate()

			Convey("Then the complexity range is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Complexity score must be between 0.0 and 1.0")
			})
		})
	})
}

func TestScorerFailure(t *testing.T) {
	Convey("Given a scorer failure", t, func() {
		cause := errors.New("division by zero")
		f := &model.ScorerFailure{SectorID: "cybersecurity", Cause: cause}

		Convey("Then it names the sector and unwraps to the cause", func() {
			So(f.Error(), ShouldContainSubstring, "cybersecurity")
			So(errors.Is(f, cause), ShouldBeTrue)
			So(model.RiskAssessment{Failure: f}.Fallback(), ShouldBeTrue)
			So(model.RiskAssessment{}.Fallback(), ShouldBeFalse)
		})
	})
}
