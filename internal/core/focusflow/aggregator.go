// Package focusflow accumulates focus statistics and derives the flow score.
package focusflow

import (
	"log/slog"
	"math"
	"sync"

	"pomoflow/internal/core/model"
)

// Saver persists the whole statistics record.
type Saver interface {
	SaveStats(model.FlowStats) error
}

// Aggregator owns FlowStats. Every mutation rewrites the stored record.
type Aggregator struct {
	mu     sync.Mutex
	stats  model.FlowStats
	saver  Saver
	logger *slog.Logger
}

// New creates an Aggregator seeded with loaded stats.
func New(loaded model.FlowStats, saver Saver, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		stats:  sanitize(loaded),
		saver:  saver,
		logger: logger,
	}
}

// Stats returns a snapshot of the counters.
func (aggregator *Aggregator) Stats() model.FlowStats {
	aggregator.mu.Lock()
	defer aggregator.mu.Unlock()
	return aggregator.stats
}

// RecordSessionCompletion counts one completed work session of the given length.
func (aggregator *Aggregator) RecordSessionCompletion(durationMinutes float64) {
	if durationMinutes < 0 || math.IsNaN(durationMinutes) || math.IsInf(durationMinutes, 0) {
		durationMinutes = 0
	}
	aggregator.mutate(func(stats *model.FlowStats) {
		stats.CompletedSessions++
		stats.TotalFocusTime += durationMinutes
	})
}

// RecordInterruption counts one work session ended early.
func (aggregator *Aggregator) RecordInterruption() {
	aggregator.mutate(func(stats *model.FlowStats) {
		stats.Interruptions++
	})
}

// UpdateEstimatedTime adds minutes to the estimate accumulator.
func (aggregator *Aggregator) UpdateEstimatedTime(minutes float64) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return
	}
	aggregator.mutate(func(stats *model.FlowStats) {
		stats.EstimatedTime += minutes
	})
}

// ResetStats zeroes every counter.
func (aggregator *Aggregator) ResetStats() {
	aggregator.mutate(func(stats *model.FlowStats) {
		*stats = model.FlowStats{}
	})
}

// FlowScore computes the score from the current stats.
func (aggregator *Aggregator) FlowScore() model.FlowScore {
	return ComputeFlowScore(aggregator.Stats())
}

func (aggregator *Aggregator) mutate(change func(*model.FlowStats)) {
	aggregator.mu.Lock()
	change(&aggregator.stats)
	snapshot := aggregator.stats
	aggregator.mu.Unlock()

	if aggregator.saver == nil {
		return
	}
	if err := aggregator.saver.SaveStats(snapshot); err != nil {
		aggregator.logger.Warn("persist focus stats", "error", err)
	}
}

// ComputeFlowScore is a pure function of stats. taskAccuracy is 0 when no
// time has been estimated, even if focus time exists.
func ComputeFlowScore(stats model.FlowStats) model.FlowScore {
	sessionCompletion := math.Min(float64(stats.CompletedSessions)*10, 100)
	breakAdherence := math.Max(0, 100-float64(stats.Interruptions)*5)

	taskAccuracy := 0.0
	if stats.TotalFocusTime > 0 && stats.EstimatedTime > 0 {
		taskAccuracy = math.Min(100, stats.TotalFocusTime/stats.EstimatedTime*100)
	}

	overall := math.Round((sessionCompletion + breakAdherence + taskAccuracy) / 3)
	return model.FlowScore{
		SessionCompletion: sessionCompletion,
		BreakAdherence:    breakAdherence,
		TaskAccuracy:      taskAccuracy,
		OverallScore:      int(overall),
	}
}

func sanitize(stats model.FlowStats) model.FlowStats {
	if stats.CompletedSessions < 0 {
		stats.CompletedSessions = 0
	}
	if stats.Interruptions < 0 {
		stats.Interruptions = 0
	}
	if stats.TotalFocusTime < 0 || math.IsNaN(stats.TotalFocusTime) || math.IsInf(stats.TotalFocusTime, 0) {
		stats.TotalFocusTime = 0
	}
	if stats.EstimatedTime < 0 || math.IsNaN(stats.EstimatedTime) || math.IsInf(stats.EstimatedTime, 0) {
		stats.EstimatedTime = 0
	}
	return stats
}
