package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shiftsync/shiftsync/internal/adapters/http/api"
	"github.com/shiftsync/shiftsync/internal/adapters/payments"
	repository "github.com/shiftsync/shiftsync/internal/adapters/repository"
	app "github.com/shiftsync/shiftsync/internal/app"
	"github.com/shiftsync/shiftsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockService struct {
	autofillResult app.AutoFillResult
	autofillErr    error
	autofillCalls  []int

	shift    model.Shift
	shiftErr error
	shifts   []model.Shift

	assignments    []model.Assignment
	assignmentsErr error

	profile    model.TalentProfile
	profileErr error

	receipt    payments.Receipt
	receiptErr error

	description string
	describeErr error
}

func (m *mockService) AutoFill(_ context.Context, shiftID string, count int) (app.AutoFillResult, error) {
	m.autofillCalls = append(m.autofillCalls, count)
	if m.autofillErr != nil {
		return app.AutoFillResult{}, m.autofillErr
	}
	return m.autofillResult, nil
}

func (m *mockService) CreateShift(_ context.Context, shift model.Shift) (model.Shift, error) {
	if m.shiftErr != nil {
		return model.Shift{}, m.shiftErr
	}
	created := shift
	created.ID = "shift-1"
	created.CreatedAt = time.Now()
	return created, nil
}

func (m *mockService) GetShift(_ context.Context, id string) (model.Shift, error) {
	if m.shiftErr != nil {
		return model.Shift{}, m.shiftErr
	}
	return m.shift, nil
}

func (m *mockService) ListShifts(_ context.Context, limit int) ([]model.Shift, error) {
	if m.shiftErr != nil {
		return nil, m.shiftErr
	}
	if limit < len(m.shifts) {
		return m.shifts[:limit], nil
	}
	return m.shifts, nil
}

func (m *mockService) ListAssignments(_ context.Context, shiftID string) ([]model.Assignment, error) {
	if m.assignmentsErr != nil {
		return nil, m.assignmentsErr
	}
	return m.assignments, nil
}

func (m *mockService) CreateProfile(_ context.Context, profile model.TalentProfile) (model.TalentProfile, error) {
	if m.profileErr != nil {
		return model.TalentProfile{}, m.profileErr
	}
	created := profile
	created.ID = "talent-1"
	created.CreatedAt = time.Now()
	return created, nil
}

func (m *mockService) GetProfile(_ context.Context, id string) (model.TalentProfile, error) {
	if m.profileErr != nil {
		return model.TalentProfile{}, m.profileErr
	}
	return m.profile, nil
}

func (m *mockService) SimulatePayment(_ context.Context, req payments.Request) (payments.Receipt, error) {
	if m.receiptErr != nil {
		return payments.Receipt{}, m.receiptErr
	}
	return m.receipt, nil
}

func (m *mockService) DescribeShift(_ context.Context, req app.DescribeRequest) (string, error) {
	if m.describeErr != nil {
		return "", m.describeErr
	}
	return m.description, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(svc *mockService) *http.ServeMux {
	server := api.NewServer(svc, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestAutofillEndpoint(t *testing.T) {
	Convey("Given the auto-fill endpoint", t, func() {
		svc := &mockService{
			autofillResult: app.AutoFillResult{
				Invited: 2,
				Talent: []app.InvitedTalent{
					{ID: "t-1", Name: "Ada", Rating: 5, Score: 124},
					{ID: "t-2", Name: "Ben", Rating: 4, Score: 87},
				},
			},
		}
		mux := newMux(svc)

		Convey("A valid request returns the invited talent", func() {
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1","count":2}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Success bool `json:"success"`
				Invited int  `json:"invited"`
				Talent  []struct {
					ID    string  `json:"id"`
					Score float64 `json:"score"`
				} `json:"talent"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Success, ShouldBeTrue)
			So(resp.Invited, ShouldEqual, 2)
			So(len(resp.Talent), ShouldEqual, 2)
			So(resp.Talent[0].ID, ShouldEqual, "t-1")
		})

		Convey("A zero-match result carries a message and empty talent list", func() {
			svc.autofillResult = app.AutoFillResult{Invited: 0, Talent: []app.InvitedTalent{}}
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1","count":3}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"invited":0`)
			So(w.Body.String(), ShouldContainSubstring, `"talent":[]`)
			So(w.Body.String(), ShouldContainSubstring, "no matching talent")
		})

		Convey("A missing count is a 400 and never reaches the service", func() {
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "missing count")
			So(svc.autofillCalls, ShouldBeEmpty)
		})

		Convey("A zero count is a 400 with a top-level error field", func() {
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1","count":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(svc.autofillCalls, ShouldBeEmpty)

			var body map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["error"], ShouldNotBeNil)
			So(body["error"], ShouldContainSubstring, "count must be a positive integer")
		})

		Convey("A missing shiftId is a 400", func() {
			w := doJSON(mux, "POST", "/shifts/autofill", `{"count":2}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "missing shiftId")
		})

		Convey("Malformed JSON is a 400", func() {
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown shift maps to 404", func() {
			svc.autofillErr = repository.ErrShiftNotFound
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"ghost","count":1}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "not_found")

			var body map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["error"], ShouldContainSubstring, "shift not found")
		})

		Convey("An invalid argument from the service maps to 400", func() {
			svc.autofillErr = fmt.Errorf("%w: count too large", app.ErrInvalidArgument)
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1","count":1}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Any other failure maps to 500", func() {
			svc.autofillErr = errors.New("disk on fire")
			w := doJSON(mux, "POST", "/shifts/autofill", `{"shiftId":"s-1","count":1}`)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
		})

		Convey("GET is not routed", func() {
			w := doJSON(mux, "GET", "/shifts/autofill", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestShiftEndpoints(t *testing.T) {
	Convey("Given the shift endpoints", t, func() {
		now := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
		svc := &mockService{
			shift: model.Shift{
				ID:            "s-1",
				BusinessID:    "biz-1",
				RoleType:      model.RoleBartender,
				HourlyRate:    40,
				WorkersNeeded: 2,
				StartsAt:      now,
				EndsAt:        now.Add(6 * time.Hour),
				CreatedAt:     now,
			},
		}
		mux := newMux(svc)

		Convey("Creating a shift returns 201 with the stored row", func() {
			w := doJSON(mux, "POST", "/shifts",
				`{"businessId":"biz-1","roleType":"bartender","hourlyRate":40,"workersNeeded":2,"startsAt":"2026-08-01T18:00:00Z","endsAt":"2026-08-02T00:00:00Z"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(w.Body.String(), ShouldContainSubstring, `"id":"shift-1"`)
		})

		Convey("A bad timestamp is a 400", func() {
			w := doJSON(mux, "POST", "/shifts",
				`{"businessId":"biz-1","roleType":"bartender","hourlyRate":40,"workersNeeded":2,"startsAt":"yesterday"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "RFC3339")
		})

		Convey("A missing businessId is a 400", func() {
			w := doJSON(mux, "POST", "/shifts", `{"roleType":"bartender","hourlyRate":40,"workersNeeded":2}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Fetching a shift by id returns it", func() {
			w := doJSON(mux, "GET", "/shifts/s-1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"roleType":"bartender"`)
		})

		Convey("An unknown shift id is a 404", func() {
			svc.shiftErr = repository.ErrShiftNotFound
			w := doJSON(mux, "GET", "/shifts/ghost", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Listing shifts honors the limit parameter", func() {
			svc.shifts = []model.Shift{svc.shift, svc.shift, svc.shift}
			w := doJSON(mux, "GET", "/shifts?limit=2", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var rows []map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
		})

		Convey("A non-numeric limit is a 400", func() {
			w := doJSON(mux, "GET", "/shifts?limit=lots", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAssignmentsEndpoint(t *testing.T) {
	Convey("Given the assignments endpoint", t, func() {
		svc := &mockService{
			assignments: []model.Assignment{
				{ID: "a-1", ShiftID: "s-1", TalentID: "t-1", Status: model.StatusInvited},
				{ID: "a-2", ShiftID: "s-1", TalentID: "t-2", Status: model.StatusAccepted},
			},
		}
		mux := newMux(svc)

		Convey("Listing assignments for a shift returns all rows", func() {
			w := doJSON(mux, "GET", "/shifts/s-1/assignments", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"invited"`)
			So(w.Body.String(), ShouldContainSubstring, `"status":"accepted"`)
		})

		Convey("An unknown shift is a 404", func() {
			svc.assignmentsErr = repository.ErrShiftNotFound
			w := doJSON(mux, "GET", "/shifts/ghost/assignments", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTalentEndpoints(t *testing.T) {
	Convey("Given the talent endpoints", t, func() {
		svc := &mockService{
			profile: model.TalentProfile{
				ID:          "t-1",
				DisplayName: "Ada",
				Rating:      4.8,
				Skills:      []string{"Bartender"},
			},
		}
		mux := newMux(svc)

		Convey("Creating a profile returns 201", func() {
			w := doJSON(mux, "POST", "/talent",
				`{"displayName":"Ada","availableNow":true,"minHourlyRate":25,"rating":4.8,"completedShifts":40,"skills":["Bartender"]}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(w.Body.String(), ShouldContainSubstring, `"id":"talent-1"`)
		})

		Convey("An invalid profile maps to 400", func() {
			svc.profileErr = fmt.Errorf("%w: rating out of range", app.ErrInvalidArgument)
			w := doJSON(mux, "POST", "/talent", `{"displayName":"Ada","rating":9}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Fetching a profile by id returns it", func() {
			w := doJSON(mux, "GET", "/talent/t-1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"displayName":"Ada"`)
		})

		Convey("An unknown profile is a 404", func() {
			svc.profileErr = repository.ErrProfileNotFound
			w := doJSON(mux, "GET", "/talent/ghost", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPaymentsEndpoint(t *testing.T) {
	Convey("Given the payment simulation endpoint", t, func() {
		svc := &mockService{
			receipt: payments.Receipt{
				PaymentID:   "pay-1",
				ShiftID:     "s-1",
				AmountCents: 900,
				Status:      "captured",
				ProcessedAt: time.Now(),
			},
		}
		mux := newMux(svc)

		Convey("A valid capture returns the receipt", func() {
			w := doJSON(mux, "POST", "/payments/simulate",
				`{"shiftId":"s-1","amountCents":900,"idempotencyKey":"k-1"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"paymentId":"pay-1"`)
		})

		Convey("A missing idempotency key maps to 400", func() {
			svc.receiptErr = payments.ErrMissingIdempotencyKey
			w := doJSON(mux, "POST", "/payments/simulate", `{"shiftId":"s-1","amountCents":900}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestDescribeEndpoint(t *testing.T) {
	Convey("Given the description endpoint", t, func() {
		svc := &mockService{description: "Shake, stir, smile."}
		mux := newMux(svc)

		Convey("A valid request returns the generated text", func() {
			w := doJSON(mux, "POST", "/shifts/describe", `{"roleType":"bartender","location":"SoMa","hourlyRate":40}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Shake, stir, smile.")
		})

		Convey("No configured backend maps to 503", func() {
			svc.describeErr = app.ErrAINotConfigured
			w := doJSON(mux, "POST", "/shifts/describe", `{"roleType":"bartender"}`)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		mux := newMux(&mockService{})

		Convey("Health serves the metrics registry", func() {
			w := doJSON(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Stats returns the provider snapshot", func() {
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Stats is read-only", func() {
			w := doJSON(mux, "POST", "/stats", "{}")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
