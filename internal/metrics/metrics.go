// Package metrics implements Prometheus collectors for the live cache components.
package metrics

const namespace = "dweb_live_cache"

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
