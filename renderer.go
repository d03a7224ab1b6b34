package grove

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Renderer. Every field is optional.
type Options struct {
	// Config holds panel model URIs and fixed origins. Nil means
	// DefaultConfig().
	Config *Config

	// Logger receives absorbed errors and debug output. Nil means
	// slog.Default().
	Logger *slog.Logger

	Poses   PoseProvider
	Haptics HapticSink
	Models  ModelProvider

	Intersections IntersectionRegistry
	Collisions    CollisionRegistry

	// Registerer, when set, receives the renderer's prometheus collectors.
	Registerer prometheus.Registerer
}

// Renderer resolves frames. ResolveFrame and the read accessors belong to a
// single render goroutine; ApplyFrame, StartGrab, EndGrab, SendHapticEvent
// and HandFor may be called from anywhere.
type Renderer struct {
	cfg     *Config
	log     *slog.Logger
	debug   bool
	poses   PoseProvider
	haptics HapticSink
	models  ModelProvider
	regs    registries
	metrics *metrics

	pending atomic.Pointer[snapshot]
	active  *snapshot

	queueMu sync.Mutex
	queue   []grabEvent
	drained []grabEvent

	fixedOrigins map[string]mgl64.Mat4
	graph        *transformGraph
	anchors      *anchorTable
	lastFrame    map[GlobalID]mgl64.Mat4
	instances    map[GlobalID]*ModelInstance
	hands        atomic.Pointer[map[GlobalID]Hand]

	frame uint64
	stats FrameStats
}

// NewRenderer creates a renderer with no frame applied.
func NewRenderer(opts Options) *Renderer {
	cfg := DefaultConfig()
	if opts.Config != nil {
		c := *opts.Config
		c.applyDefaults()
		cfg = &c
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		cfg:          cfg,
		log:          logger,
		debug:        cfg.Debug,
		poses:        opts.Poses,
		haptics:      opts.Haptics,
		models:       opts.Models,
		metrics:      newMetrics(opts.Registerer, cfg.MetricsNamespace),
		fixedOrigins: cfg.fixedOrigins(),
		graph:        newTransformGraph(),
		anchors:      newAnchorTable(),
		lastFrame:    make(map[GlobalID]mgl64.Mat4),
		instances:    make(map[GlobalID]*ModelInstance),
	}
	if opts.Intersections != nil {
		r.regs.intersections = append(r.regs.intersections, opts.Intersections)
	}
	if opts.Collisions != nil {
		r.regs.collisions = append(r.regs.collisions, opts.Collisions)
	}
	empty := map[GlobalID]Hand{}
	r.hands.Store(&empty)
	return r
}

// AddIntersectionRegistry attaches another panel/poker sink.
func (r *Renderer) AddIntersectionRegistry(reg IntersectionRegistry) {
	r.regs.intersections = append(r.regs.intersections, reg)
}

// AddCollisionRegistry attaches another handle/grabber sink.
func (r *Renderer) AddCollisionRegistry(reg CollisionRegistry) {
	r.regs.collisions = append(r.regs.collisions, reg)
}

// SetPoseProvider replaces the pose source used from the next frame on.
func (r *Renderer) SetPoseProvider(p PoseProvider) {
	r.poses = p
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-frame stats are logged at debug
// level.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// ResolveFrame runs one frame: it picks up the latest applied frame, applies
// queued grab events, walks every root and resolves every transform. dt is
// the time since the previous frame in seconds and drives model animation.
// The returned list is owned by the caller until the next call.
func (r *Renderer) ResolveFrame(dt float64) RenderList {
	r.frame++
	r.beginFrame()
	r.drainEvents()

	origins := buildOriginTable(r.fixedOrigins, r.poses)
	r.graph.reset()
	r.regs.reset()

	t := &traversal{
		graph:     r.graph,
		anchors:   r.anchors,
		origins:   origins,
		models:    r.models,
		regs:      &r.regs,
		cfg:       r.cfg,
		log:       r.log,
		debug:     r.debug,
		absorb:    r.absorb,
		dt:        float32(dt),
		instances: r.instances,
		live:      make(map[GlobalID]struct{}, len(r.instances)),
		visited:   make(map[GlobalID]struct{}),
		hands:     make(map[GlobalID]Hand),
	}

	stats := FrameStats{Frame: r.frame}
	t0 := time.Now()
	if r.active != nil {
		t.textures = r.active.textures
		stats.Roots = len(r.active.roots)
		for _, rs := range r.active.roots {
			t.traverseRoot(rs)
		}
	}
	stats.TraverseTime = time.Since(t0)

	t0 = time.Now()
	r.graph.resolveAll(func(id GlobalID, err error) {
		stats.Failed++
		r.absorb(id, err)
		r.releaseCycleAnchor(id)
	})
	stats.ResolveTime = time.Since(t0)

	r.lastFrame = r.graph.resolved
	// Items whose transform failed are not drawn this frame.
	list := t.renderList[:0]
	for _, inst := range t.renderList {
		if _, ok := r.lastFrame[inst.ID]; ok {
			list = append(list, inst)
		}
	}
	t.renderList = list
	for id := range r.instances {
		if _, ok := t.live[id]; !ok {
			delete(r.instances, id)
		}
	}
	r.hands.Store(&t.hands)

	stats.Nodes = t.nodeCount
	stats.Records = r.graph.count()
	stats.Resolved = len(r.lastFrame)
	stats.RenderItems = len(t.renderList)
	stats.Anchors = r.anchors.count()
	r.stats = stats
	r.metrics.observeFrame(stats, stats.Anchors)
	if r.debug {
		r.debugLog(stats)
	}
	return t.renderList
}

// releaseCycleAnchor drops the anchor of a grabbable that sits on a
// dependency cycle, so its subtree resolves again from the next frame.
func (r *Renderer) releaseCycleAnchor(id GlobalID) {
	if !r.graph.inCycle(id) {
		return
	}
	a, ok := r.anchors.lookup(id)
	if !ok {
		return
	}
	r.anchors.endGrab(a.Grabber, id)
	r.log.Warn("grab released: anchor closes a transform cycle",
		slog.String("grabber", a.Grabber.String()), slog.String("grabbable", id.String()))
}

// absorb logs a non-fatal error and counts it.
func (r *Renderer) absorb(id GlobalID, err error) {
	r.metrics.absorbed(err)
	r.log.Debug("absorbed error", slog.String("id", id.String()), slog.Any("err", err))
}

// SendHapticEvent triggers a pulse on the hand device that owned target in
// the latest traversal. Nodes under no hand produce no pulse. Safe to call
// from any goroutine.
func (r *Renderer) SendHapticEvent(target GlobalID, amplitude, frequency, duration float64) error {
	hand, ok := r.HandFor(target)
	if !ok {
		return fmt.Errorf("haptic %v: %w", target, ErrStaleReference)
	}
	if hand == HandNone || r.haptics == nil {
		return nil
	}
	r.haptics.TriggerHaptic(hand, amplitude, frequency, duration)
	return nil
}

// HandFor returns the hand device that target was under in the latest
// traversal. Safe to call from any goroutine.
func (r *Renderer) HandFor(target GlobalID) (Hand, bool) {
	hands := *r.hands.Load()
	h, ok := hands[target]
	return h, ok
}

// LastFrameTransform returns id's universe-from-node matrix from the most
// recent frame.
func (r *Renderer) LastFrameTransform(id GlobalID) (mgl64.Mat4, bool) {
	m, ok := r.lastFrame[id]
	return m, ok
}

// Anchor returns the active anchor of grabbable.
func (r *Renderer) Anchor(grabbable GlobalID) (Anchor, bool) {
	return r.anchors.lookup(grabbable)
}

// Anchors returns a copy of every active anchor keyed by grabbable.
func (r *Renderer) Anchors() map[GlobalID]Anchor {
	return r.anchors.snapshot()
}

// LastFrame returns a copy of every transform resolved in the most recent
// frame.
func (r *Renderer) LastFrame() map[GlobalID]mgl64.Mat4 {
	return maps.Clone(r.lastFrame)
}

// Stats returns the stats of the most recent frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}
