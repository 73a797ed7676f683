package metrics

import "sync/atomic"

// RequestCounter tracks totals reported by /stats/requests
type RequestCounter struct {
	total      atomic.Int64
	successful atomic.Int64
	failed     atomic.Int64
}

// RequestStats is a point-in-time snapshot of a RequestCounter
type RequestStats struct {
	TotalRequests      int64 `json:"totalRequests"`
	SuccessfulRequests int64 `json:"successfulRequests"`
	FailedRequests     int64 `json:"failedRequests"`
}

// NewRequestCounter creates a zeroed counter
func NewRequestCounter() *RequestCounter {
	return &RequestCounter{}
}

// Record counts one request and classifies it by its success
func (c *RequestCounter) Record(success bool) {
	c.total.Add(1)
	if success {
		c.successful.Add(1)
	} else {
		c.failed.Add(1)
	}
}

// Snapshot returns the current totals
func (c *RequestCounter) Snapshot() RequestStats {
	return RequestStats{
		TotalRequests:      c.total.Load(),
		SuccessfulRequests: c.successful.Load(),
		FailedRequests:     c.failed.Load(),
	}
}
