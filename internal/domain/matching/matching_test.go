package matching_test

import (
	"testing"

	"github.com/shiftsync/shiftsync/internal/domain/matching"
	"github.com/shiftsync/shiftsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(id string, rating float64, completed int, skills ...string) model.TalentProfile {
	return model.TalentProfile{
		ID:              id,
		DisplayName:     id,
		AvailableNow:    true,
		Rating:          rating,
		CompletedShifts: completed,
		Skills:          skills,
	}
}

func TestSkillTerm(t *testing.T) {
	Convey("Given the role-to-term table", t, func() {
		Convey("Every known role maps to a readable term", func() {
			So(matching.SkillTerm(model.RoleBartender), ShouldEqual, "Bartender")
			So(matching.SkillTerm(model.RoleSommelier), ShouldEqual, "Sommelier")
			So(matching.SkillTerm(model.RoleCoatCheck), ShouldEqual, "Coat Check")
		})

		Convey("Unmapped roles fall back to the raw string", func() {
			So(matching.SkillTerm(model.RoleType("fire_juggler")), ShouldEqual, "fire_juggler")
		})
	})
}

func TestSkillMatches(t *testing.T) {
	Convey("Given the loose skill matcher", t, func() {
		Convey("Matching is case-insensitive", func() {
			So(matching.SkillMatches("Sommelier", []string{"sommelier"}), ShouldBeTrue)
			So(matching.SkillMatches("Sommelier", []string{"SOMMELIER"}), ShouldBeTrue)
		})

		Convey("A tag containing the term matches", func() {
			So(matching.SkillMatches("Sommelier", []string{"sommelier & wine steward"}), ShouldBeTrue)
			So(matching.SkillMatches("Bartender", []string{"Master Bartender"}), ShouldBeTrue)
		})

		Convey("A term containing the tag matches", func() {
			So(matching.SkillMatches("Bartender", []string{"Bar"}), ShouldBeTrue)
		})

		Convey("Unrelated tags do not match", func() {
			So(matching.SkillMatches("Sommelier", []string{"Wine"}), ShouldBeFalse)
			So(matching.SkillMatches("Valet", []string{"Security"}), ShouldBeFalse)
		})

		Convey("Empty tags never match", func() {
			So(matching.SkillMatches("Host", []string{""}), ShouldBeFalse)
			So(matching.SkillMatches("Host", nil), ShouldBeFalse)
		})
	})
}

func TestRankerScore(t *testing.T) {
	Convey("Given the default ranker", t, func() {
		r := matching.NewRanker()

		Convey("The score follows rating*20 + min(shifts,50)*0.5 + tags*2", func() {
			p := profile("t1", 4.0, 30, "Bartender", "Mixology")
			So(r.Score(p), ShouldAlmostEqual, 4.0*20+30*0.5+2*2)
		})

		Convey("Experience is capped at 50 shifts", func() {
			veteran := profile("t2", 3.0, 900, "Server")
			capped := profile("t3", 3.0, 50, "Server")
			So(r.Score(veteran), ShouldAlmostEqual, r.Score(capped))
		})

		Convey("A full-rating candidate can reach 125 plus skill breadth", func() {
			p := profile("t4", 5.0, 50, "Bartender")
			So(r.Score(p), ShouldAlmostEqual, 100+25+2)
		})

		Convey("Rating dominates small skill-count differences", func() {
			lower := profile("t5", 4.0, 20, "Bartender", "Mixology")
			higher := profile("t6", 5.0, 20, "Bartender")
			So(r.Score(higher), ShouldBeGreaterThan, r.Score(lower))
		})
	})

	Convey("Given a ranker with custom weights", t, func() {
		r := matching.NewRanker(
			matching.WithRatingWeight(10),
			matching.WithExperienceWeight(1),
			matching.WithExperienceCap(10),
			matching.WithSkillTagWeight(0.5),
		)

		Convey("The overrides apply", func() {
			p := profile("t7", 2.0, 20, "Host", "Greeter")
			So(r.Score(p), ShouldAlmostEqual, 2.0*10+10*1+2*0.5)
		})
	})
}

func TestRankerRank(t *testing.T) {
	Convey("Given a pool of bartender candidates", t, func() {
		r := matching.NewRanker()
		pool := []model.TalentProfile{
			profile("mid", 4.0, 10, "Bartender"),
			profile("top", 5.0, 40, "Bartender", "Mixology"),
			profile("nomatch", 5.0, 50, "Valet"),
			profile("low", 2.0, 5, "bar"),
		}

		Convey("Rank filters by skill and orders by score descending", func() {
			got := r.Rank(model.RoleBartender, pool, 10)
			So(len(got), ShouldEqual, 3)
			So(got[0].Profile.ID, ShouldEqual, "top")
			So(got[1].Profile.ID, ShouldEqual, "mid")
			So(got[2].Profile.ID, ShouldEqual, "low")
		})

		Convey("Rank truncates to count", func() {
			got := r.Rank(model.RoleBartender, pool, 1)
			So(len(got), ShouldEqual, 1)
			So(got[0].Profile.ID, ShouldEqual, "top")
		})

		Convey("An empty pool yields an empty selection", func() {
			So(r.Rank(model.RoleBartender, nil, 3), ShouldBeEmpty)
		})

		Convey("Ties keep arrival order", func() {
			a := profile("first", 4.0, 10, "Bartender")
			b := profile("second", 4.0, 10, "Bartender")
			got := r.Rank(model.RoleBartender, []model.TalentProfile{a, b}, 2)
			So(got[0].Profile.ID, ShouldEqual, "first")
			So(got[1].Profile.ID, ShouldEqual, "second")
		})
	})
}
