package telemetry

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// StartStatsView serves runtime charts (heap, goroutines, GC) on addr.
// Call at most once per process.
func StartStatsView(addr string) {
	// set configurations before calling `statsview.New()`
	viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()
}
