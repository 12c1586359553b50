package models

// HealthResponse is the body served by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// HealthStatus is the part of a /health body the client reads.
// Other keys are ignored whatever their type. Status is nil when absent.
type HealthStatus struct {
	Status *string `json:"status"`
}

// StatusLabel returns the reported status or "unknown" when absent.
func (h *HealthStatus) StatusLabel() string {
	if h == nil || h.Status == nil {
		return "unknown"
	}
	return *h.Status
}
