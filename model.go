package grove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is a loaded, renderer-ready asset. grove never looks inside Payload.
type Model struct {
	URI       string
	Animation *AnimationClip
	Payload   any
}

// ModelStatus is the state of a model request.
type ModelStatus uint8

const (
	ModelReady   ModelStatus = iota // the model is available
	ModelPending                    // a load is in progress; ask again next frame
	ModelFailed                     // the load failed and will not be retried
)

func (s ModelStatus) String() string {
	switch s {
	case ModelReady:
		return "ready"
	case ModelPending:
		return "pending"
	case ModelFailed:
		return "failed"
	default:
		return fmt.Sprintf("ModelStatus(%d)", s)
	}
}

// ModelProvider resolves model URIs without blocking. It is called every
// frame for every visible model node until it reports a terminal status.
type ModelProvider interface {
	ResolveModel(uri string) (*Model, ModelStatus)
}

// ModelLoader fetches and decodes one model. It may block; ModelCache runs it
// on its own goroutine.
type ModelLoader func(ctx context.Context, uri string) (*Model, error)

// ModelCache is a ModelProvider backed by a blocking ModelLoader. The first
// request for a URI starts a load and reports ModelPending; later requests
// report ModelPending until the load finishes. Failed URIs are remembered and
// never retried; loads cut short by cancellation are not failures. Once the
// cache's context is done no new loads start.
type ModelCache struct {
	ctx  context.Context
	load ModelLoader
	log  *slog.Logger

	mu       sync.Mutex
	ready    map[string]*Model
	inFlight map[string]struct{}
	failed   map[string]error
	wg       sync.WaitGroup
}

// NewModelCache creates a cache. Loads started by the cache are cancelled
// when ctx is done.
func NewModelCache(ctx context.Context, load ModelLoader, logger *slog.Logger) *ModelCache {
	if load == nil {
		panic("grove: nil ModelLoader")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelCache{
		ctx:      ctx,
		load:     load,
		log:      logger,
		ready:    make(map[string]*Model),
		inFlight: make(map[string]struct{}),
		failed:   make(map[string]error),
	}
}

// Add stores an already-loaded model.
func (c *ModelCache) Add(m *Model) {
	c.mu.Lock()
	c.ready[m.URI] = m
	c.mu.Unlock()
}

// ResolveModel implements ModelProvider.
func (c *ModelCache) ResolveModel(uri string) (*Model, ModelStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.ready[uri]; ok {
		return m, ModelReady
	}
	if _, ok := c.failed[uri]; ok {
		return nil, ModelFailed
	}
	if _, ok := c.inFlight[uri]; ok {
		return nil, ModelPending
	}
	if c.ctx.Err() != nil {
		return nil, ModelPending
	}
	c.inFlight[uri] = struct{}{}
	c.wg.Add(1)
	go c.fetch(uri)
	return nil, ModelPending
}

// Err returns the error a failed URI failed with, or nil.
func (c *ModelCache) Err(uri string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[uri]
}

// Wait blocks until every load started so far has finished.
func (c *ModelCache) Wait() {
	c.wg.Wait()
}

func (c *ModelCache) fetch(uri string) {
	defer c.wg.Done()
	m, err := c.load(c.ctx, uri)
	if err == nil && m == nil {
		err = fmt.Errorf("loader returned no model")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, uri)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Not the URI's fault: a later request may load it again.
		c.log.Debug("model load cancelled", slog.String("uri", uri), slog.Any("err", err))
		return
	}
	if err != nil {
		c.failed[uri] = err
		c.log.Warn("model load failed", slog.String("uri", uri), slog.Any("err", err))
		return
	}
	if m.URI == "" {
		m.URI = uri
	}
	c.ready[uri] = m
	c.log.Debug("model loaded", slog.String("uri", uri))
}

// ModelInstance is one node's copy of a model. It survives across frames as
// long as its node keeps being visited with the same URI.
type ModelInstance struct {
	ID    GlobalID
	Model *Model

	// UniverseFromModel is the node's resolved transform, written during
	// resolution.
	UniverseFromModel mgl64.Mat4

	// Pose is the model-local animation pose.
	Pose mgl64.Mat4

	// Texture overrides the model's base color texture (panels only).
	Texture *TextureBinding

	uri  string
	anim *animator
}

func newModelInstance(id GlobalID, uri string, m *Model) *ModelInstance {
	inst := &ModelInstance{
		ID:                id,
		Model:             m,
		UniverseFromModel: identityTransform,
		Pose:              identityTransform,
		uri:               uri,
	}
	if m.Animation != nil {
		inst.anim = newAnimator(m.Animation)
	}
	return inst
}

// Transform returns the universe-from-mesh matrix including animation.
func (mi *ModelInstance) Transform() mgl64.Mat4 {
	return mi.UniverseFromModel.Mul4(mi.Pose)
}

// place stores the resolved transform and advances the animation by dt.
func (mi *ModelInstance) place(universeFromNode mgl64.Mat4, dt float32) {
	mi.UniverseFromModel = universeFromNode
	if mi.anim != nil {
		mi.Pose = mi.anim.update(dt)
	}
}

// RenderList is the set of model instances to draw this frame, in traversal
// order.
type RenderList []*ModelInstance
