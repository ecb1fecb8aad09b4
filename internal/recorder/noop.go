package recorder

import "VolLab/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordClustering(_ *ClusteringRecord) error              { return nil }
func (n *NoopRecorder) RecordBacktest(_ *BacktestRecord, _ []model.Trade) error { return nil }
func (n *NoopRecorder) Close() error                                            { return nil }
