package model

// FlowStats accumulates focus activity. Times are in minutes.
type FlowStats struct {
	CompletedSessions int
	Interruptions     int
	TotalFocusTime    float64
	EstimatedTime     float64
}

// FlowScore is derived from FlowStats on every read. Each component is 0-100.
type FlowScore struct {
	SessionCompletion float64
	BreakAdherence    float64
	TaskAccuracy      float64
	OverallScore      int
}
