// Package metrics holds the Prometheus collectors for the API and cron worker.
// Every constructor accepts a nil registerer and then returns a collector that
// records nothing, so services can be built without metrics in tests.
package metrics

const namespace = "astro"

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
