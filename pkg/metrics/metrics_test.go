package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("test"),
				WithSubsystem("career"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
			)

			Convey("Then its collectors should be registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				m.seasonsSimulated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_career_seasons_simulated_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		SetEnabled(true)

		Convey("When recording offers", func() {
			before := testutil.ToFloat64(globalManager.offersGenerated.WithLabelValues("loan"))
			RecordOfferGenerated("loan")
			RecordOfferDropped("budget")

			Convey("Then the labelled counter should move", func() {
				So(testutil.ToFloat64(globalManager.offersGenerated.WithLabelValues("loan")), ShouldEqual, before+1)
			})
		})

		Convey("When recording a season", func() {
			before := testutil.ToFloat64(globalManager.seasonsSimulated)
			RecordSeasonSimulated(3 * time.Millisecond)
			So(testutil.ToFloat64(globalManager.seasonsSimulated), ShouldEqual, before+1)
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			before := testutil.ToFloat64(globalManager.ledgerCommits)
			RecordLedgerCommit()
			So(testutil.ToFloat64(globalManager.ledgerCommits), ShouldEqual, before)
			SetEnabled(true)
		})

		Convey("Every recorder should be safe to call", func() {
			So(func() {
				RecordSeasonError("duplicate")
				UpdateActiveAthletes(3)
				RecordRetirement()
				ObserveEligibleClubs(12)
				RecordOfferAccepted("transfer")
				RecordLedgerRejection()
				RecordInjury("minor")
				RecordSetback()
				RecordSuspension("league", "issued")
				RecordTraitEvent("acquired")
				RecordRoleTransition("up")
				RecordTrainingRejected()
				ObserveOverallDelta(-2)
				UpdateQueueDepth(4)
				RecordQueueRejected("full")
				RecordJobProcessed("ok", 3*time.Millisecond)
				UpdateWorkersRunning(2)
			}, ShouldNotPanic)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given the metrics handler", t, func() {
		RecordRetirement()
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Convey("Then it should expose the custom registry", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.Contains(rec.Body.String(), "careersim_engine_retirements_total"), ShouldBeTrue)
		})
	})
}
