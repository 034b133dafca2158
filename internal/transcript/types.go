package transcript

// Segment is a time-bounded span of transcript text as returned by the service.
// Start and End are offsets in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the parsed transcription of one audio file. Segment order is the
// order the service returned and is used as cue order.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
}
