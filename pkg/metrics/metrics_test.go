package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "knox")
				So(manager.subsystem, ShouldEqual, "league")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("history"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"league": "hard-knox"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the collectors should carry the custom names", func() {
				manager.owners.Set(12)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_history_owners")
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults should survive", func() {
				So(manager.namespace, ShouldEqual, "knox")
				So(manager.subsystem, ShouldEqual, "league")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("When recording loaded rows", func() {
			before := testutil.ToFloat64(globalManager.rowsLoaded.WithLabelValues("matchups"))
			RecordRowsLoaded("matchups", 56)

			Convey("Then the counter should grow by the row count", func() {
				after := testutil.ToFloat64(globalManager.rowsLoaded.WithLabelValues("matchups"))
				So(after-before, ShouldEqual, 56)
			})
		})

		Convey("When publishing league size", func() {
			SetLeagueSize(12, 8, 672)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(globalManager.owners), ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.seasons), ShouldEqual, 8)
				So(testutil.ToFloat64(globalManager.gameLogEntries), ShouldEqual, 672)
			})
		})

		Convey("When recording failures, durations and exports", func() {
			So(func() {
				RecordBuildFailure("reconcile")
				ObserveBuildStage("registry", 3*time.Millisecond)
				ObserveAnalytics("standings", 250*time.Microsecond)
				RecordNoHistory()
				RecordExport("csv", "ok")
				RecordHTTPRequest("standings", "GET", "200")
				RecordHTTPRequestDuration("standings", "GET", "200", 1.5)
			}, ShouldNotPanic)
		})

		Convey("When gathering from the custom registry", func() {
			RecordNoHistory()
			families, err := GetRegistry().Gather()

			Convey("Then only league metrics should be exposed", func() {
				So(err, ShouldBeNil)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "knox_league_")
				}
			})
		})
	})
}
