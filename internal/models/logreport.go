package models

// ExceptionCount is the number of occurrences of one exception text
// within a single time bucket.
type ExceptionCount struct {
	Exception string `json:"exception"`
	Count     int    `json:"count"`
}

// BucketEntry is one 15-minute bucket of the log report. Timestamp is the
// bucket key in "H:MM-H:MM" form (hours unpadded, e.g. "5:30-5:45").
// Logs are sorted by exception text ascending.
type BucketEntry struct {
	Timestamp string           `json:"timestamp"`
	Logs      []ExceptionCount `json:"logs"`
}
