package smoke

import "time"

// Config holds configuration for the smoke run
type Config struct {
	BaseURL    string        // Base URL of the service
	Requests   int           // Number of match requests per mode
	Candidates int           // Number of synthetic entities for duplicate checks
	TopN       int           // Result limit requested per call
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	LogFile    string        // Log file for smoke output
	Verbose    bool          // Enable verbose logging
}

// Match mirrors a single ranked result returned by the service.
type Match struct {
	EntityID   string             `json:"entity_id"`
	TotalScore float64            `json:"total_score"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// DuplicateReport mirrors the /duplicates/check response.
type DuplicateReport struct {
	Duplicates []struct {
		EntityID        string  `json:"entity_id"`
		Title           string  `json:"title"`
		TitleSimilarity float64 `json:"title_similarity"`
		DuplicateLink   bool    `json:"duplicate_link"`
	} `json:"duplicates"`
}

// Stats holds smoke run statistics
type Stats struct {
	RequestsSent      int
	RequestsFailed    int
	ResultsReturned   int
	DuplicatesChecked int
	DuplicatesFlagged int
	Violations        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
