package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("And the custom registry should hold the metrics", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				// Counters and histograms register lazily for vecs; the
				// plain collectors are present immediately.
				So(families, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording match metrics", func() {
			Convey("Then it should record match requests", func() {
				So(func() {
					RecordMatchRequest("profile")
					RecordMatchRequest("similar")
					RecordMatchRequest("personalized")
				}, ShouldNotPanic)
			})

			Convey("And it should record match latency", func() {
				So(func() {
					RecordMatchLatency("profile", 12.5)
					RecordMatchLatency("profile", 48.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record scored candidates", func() {
				So(func() {
					RecordCandidatesScored(20)
					RecordCandidatesScored(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record empty pools and duplicate checks", func() {
				So(func() {
					RecordEmptyPool("similar")
					RecordDuplicateCheck()
					RecordDuplicateCheck()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording operational metrics", func() {
			Convey("Then it should update catalog sizes", func() {
				So(func() {
					UpdateCatalogSize("clubs", 5)
					UpdateCatalogSize("events", 3)
					UpdateCatalogSize("opportunities", 4)
				}, ShouldNotPanic)
			})

			Convey("And it should update batch pool gauges", func() {
				So(func() {
					UpdateBatchWorkerCount(8)
					UpdateBatchQueueDepth(12)
					RecordBatchJobLatency(3.2)
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP metrics", func() {
				So(func() {
					RecordHTTPRequest("match", "POST", "200")
					RecordHTTPRequestDuration("match", "POST", "200", 21.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global metrics setup", t, func() {
		Convey("When fetching the registry", func() {
			registry := GetRegistry()

			Convey("Then it should be the custom registry with metrics installed", func() {
				So(registry, ShouldNotBeNil)

				RecordMatchRequest("profile")
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["matchd_engine_match_requests_total"], ShouldBeTrue)
			})
		})
	})
}
