package drill

import "time"

// Config holds configuration for a drill run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumSeries int           // Number of series to submit
	Interval  time.Duration // Pause between submissions
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// seriesRequest mirrors the submit form fields.
type seriesRequest struct {
	MadeShots    int    `json:"madeShots"`
	Observations string `json:"observations"`
}

// submitAck mirrors the submission response.
type submitAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// aggregate mirrors the stats response.
type aggregate struct {
	SeriesCount    int    `json:"seriesCount"`
	TotalMadeShots int    `json:"totalMadeShots"`
	TotalShots     int    `json:"totalShots"`
	Percentage     string `json:"percentage"`
}

// Stats holds drill statistics.
type Stats struct {
	Submitted     int
	Saved         int
	Failed        int
	MadeShotsSent int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
