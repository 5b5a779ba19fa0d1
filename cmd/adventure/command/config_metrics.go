package command

// MetricsConfig exposes the Prometheus endpoint. A zero port disables it.
type MetricsConfig struct {
	Port uint16 `json:"port,omitempty"`
}
