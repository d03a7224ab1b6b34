package grove

import (
	"log/slog"
	"time"
)

// FrameStats describes the most recent ResolveFrame call.
type FrameStats struct {
	Frame        uint64
	Roots        int
	Nodes        int // nodes visited by traversal
	Records      int // pending transform records, hooks included
	Resolved     int
	Failed       int
	RenderItems  int
	Anchors      int
	TraverseTime time.Duration
	ResolveTime  time.Duration
}

// debugLog logs the frame's timing and counts. Only called in debug mode.
func (r *Renderer) debugLog(stats FrameStats) {
	r.log.Debug("frame resolved",
		slog.Uint64("frame", stats.Frame),
		slog.Duration("traverse", stats.TraverseTime),
		slog.Duration("resolve", stats.ResolveTime),
		slog.Duration("total", stats.TraverseTime+stats.ResolveTime),
		slog.Int("roots", stats.Roots),
		slog.Int("nodes", stats.Nodes),
		slog.Int("resolved", stats.Resolved),
		slog.Int("failed", stats.Failed),
		slog.Int("render_items", stats.RenderItems),
		slog.Int("anchors", stats.Anchors),
	)
}

// debugCheckDepth warns if a root's tree is deeper than the threshold.
const debugMaxTreeDepth = 32

func debugCheckDepth(log *slog.Logger, id GlobalID, depth int) {
	if depth == debugMaxTreeDepth+1 {
		log.Warn("tree depth exceeds threshold",
			slog.String("id", id.String()), slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(log *slog.Logger, id GlobalID, n int) {
	if n > debugMaxChildCount {
		log.Warn("node has too many children",
			slog.String("id", id.String()), slog.Int("children", n), slog.Int("threshold", debugMaxChildCount))
	}
}
