package storage

// AgentStats aggregates play outcomes across all persisted sessions.
type AgentStats struct {
	TotalSessions         int     `json:"total_sessions"`
	ActiveSessions        int     `json:"active_sessions"`
	CompletedGames        int     `json:"completed_games"`
	WonGames              int     `json:"won_games"`
	SuccessRate           float64 `json:"success_rate"`
	TotalActions          int     `json:"total_actions"`
	AverageActionsPerGame float64 `json:"average_actions_per_game"`
}
