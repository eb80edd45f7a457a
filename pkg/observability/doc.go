/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	eng, _ := optirail.New(optirail.WithLifecycleHooks(metrics.Hooks()))
	http.Handle("/metrics", metrics.Handler())
*/
package observability
