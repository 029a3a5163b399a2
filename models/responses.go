package models

// Health is the payload of the health endpoint.
type Health struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version"`
	Features  map[string]bool `json:"features"`
}
