package metrics

import "time"

// Reporter 场景指标上报
type Reporter interface {
	// ReportTick 一次地图 tick 的耗时和变化的层数
	ReportTick(mapID string, elapsed time.Duration, changedLayers int)
	// ReportChangedInstances 一个层在一次 tick 中变化的实例数
	ReportChangedInstances(mapID string, layerID string, count int)
	// ReportInstances 层当前的实例数
	ReportInstances(mapID string, layerID string, count int)
	// ReportLayers 地图当前的层数
	ReportLayers(mapID string, count int)
}

type noopReporter struct{}

// NewNoopReporter reporter that drops everything
func NewNoopReporter() Reporter {
	return noopReporter{}
}

func (noopReporter) ReportTick(string, time.Duration, int) {}
func (noopReporter) ReportChangedInstances(string, string, int) {}
func (noopReporter) ReportInstances(string, string, int) {}
func (noopReporter) ReportLayers(string, int) {}
