package storage

import "pomoflow/internal/core/model"

type yamlStats struct {
	CompletedSessions int     `yaml:"completed_sessions"`
	Interruptions     int     `yaml:"interruptions"`
	TotalFocusTime    float64 `yaml:"total_focus_time_minutes"`
	EstimatedTime     float64 `yaml:"estimated_time_minutes"`
}

// LoadStats reads the focus statistics. Malformed data yields zeroed stats and
// the parse error.
func (store *FileStore) LoadStats() (model.FlowStats, error) {
	var fileData yamlStats
	if _, err := store.readRecord(statsFileName, &fileData); err != nil {
		return model.FlowStats{}, err
	}
	return model.FlowStats{
		CompletedSessions: fileData.CompletedSessions,
		Interruptions:     fileData.Interruptions,
		TotalFocusTime:    fileData.TotalFocusTime,
		EstimatedTime:     fileData.EstimatedTime,
	}, nil
}

// SaveStats rewrites the focus statistics record.
func (store *FileStore) SaveStats(stats model.FlowStats) error {
	return store.writeRecord(statsFileName, yamlStats{
		CompletedSessions: stats.CompletedSessions,
		Interruptions:     stats.Interruptions,
		TotalFocusTime:    stats.TotalFocusTime,
		EstimatedTime:     stats.EstimatedTime,
	})
}
