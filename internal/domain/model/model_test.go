package model_test

import (
	"testing"
	"time"

	"github.com/shiftsync/shiftsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoleType(t *testing.T) {
	Convey("Given the role enumeration", t, func() {
		Convey("Every listed role is valid", func() {
			for _, r := range model.Roles() {
				So(r.Valid(), ShouldBeTrue)
			}
		})

		Convey("Unknown roles are invalid", func() {
			So(model.RoleType("dj").Valid(), ShouldBeFalse)
			So(model.RoleType("").Valid(), ShouldBeFalse)
		})
	})
}

func TestShiftValidate(t *testing.T) {
	Convey("Given a well-formed shift", t, func() {
		now := time.Now()
		shift := model.Shift{
			ID:            "shift-1",
			BusinessID:    "biz-1",
			RoleType:      model.RoleBartender,
			HourlyRate:    35,
			WorkersNeeded: 2,
			StartsAt:      now,
			EndsAt:        now.Add(6 * time.Hour),
		}

		Convey("It validates", func() {
			So(shift.Validate(), ShouldBeNil)
		})

		Convey("A non-positive rate fails", func() {
			shift.HourlyRate = 0
			So(shift.Validate(), ShouldNotBeNil)
		})

		Convey("A non-positive headcount fails", func() {
			shift.WorkersNeeded = 0
			So(shift.Validate(), ShouldNotBeNil)
		})

		Convey("An unknown role fails", func() {
			shift.RoleType = "pilot"
			So(shift.Validate(), ShouldNotBeNil)
		})

		Convey("Ending before starting fails", func() {
			shift.EndsAt = shift.StartsAt.Add(-time.Hour)
			So(shift.Validate(), ShouldNotBeNil)
		})
	})
}

func TestTalentProfileValidate(t *testing.T) {
	Convey("Given a well-formed profile", t, func() {
		profile := model.TalentProfile{
			ID:              "talent-1",
			DisplayName:     "Sam Rivera",
			AvailableNow:    true,
			MinHourlyRate:   25,
			Rating:          4.5,
			CompletedShifts: 12,
			Skills:          []string{"Bartender", "Mixology"},
		}

		Convey("It validates", func() {
			So(profile.Validate(), ShouldBeNil)
		})

		Convey("A rating above 5 fails", func() {
			profile.Rating = 5.5
			So(profile.Validate(), ShouldNotBeNil)
		})

		Convey("Negative completed shifts fail", func() {
			profile.CompletedShifts = -1
			So(profile.Validate(), ShouldNotBeNil)
		})

		Convey("A blank skill tag fails", func() {
			profile.Skills = []string{"Bartender", "  "}
			So(profile.Validate(), ShouldNotBeNil)
		})

		Convey("A blank display name fails", func() {
			profile.DisplayName = " "
			So(profile.Validate(), ShouldNotBeNil)
		})
	})
}
