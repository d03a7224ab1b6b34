package grove

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationClip is a looping procedural animation applied to a model
// instance: an optional continuous spin plus an optional back-and-forth bob.
type AnimationClip struct {
	// SpinAxis and SpinPeriod rotate the model about SpinAxis once every
	// SpinPeriod seconds. A zero period disables spinning.
	SpinAxis   mgl64.Vec3
	SpinPeriod float32

	// The model moves along BobAxis between -BobAmplitude and +BobAmplitude,
	// completing one round trip every BobPeriod seconds. A zero period
	// disables bobbing.
	BobAxis      mgl64.Vec3
	BobAmplitude float64
	BobPeriod    float32

	// BobEase shapes the bob. Nil means ease.InOutSine.
	BobEase ease.TweenFunc
}

// animator advances an AnimationClip. There is no global animation manager;
// each model instance owns one and the resolver advances it once per frame.
type animator struct {
	clip *AnimationClip
	spin *gween.Sequence
	bob  *gween.Sequence
}

func newAnimator(clip *AnimationClip) *animator {
	a := &animator{clip: clip}
	if clip.SpinPeriod > 0 {
		a.spin = gween.NewSequence(gween.New(0, 2*math.Pi, clip.SpinPeriod, ease.Linear))
		a.spin.SetLoop(-1)
	}
	if clip.BobPeriod > 0 {
		fn := clip.BobEase
		if fn == nil {
			fn = ease.InOutSine
		}
		a.bob = gween.NewSequence(gween.New(-1, 1, clip.BobPeriod/2, fn))
		a.bob.SetYoyo(true)
		a.bob.SetLoop(-1)
	}
	return a
}

// update advances the clip by dt seconds and returns the model-local pose.
func (a *animator) update(dt float32) mgl64.Mat4 {
	pose := identityTransform
	if a.bob != nil {
		v, _, _ := a.bob.Update(dt)
		off := unitAxis(a.clip.BobAxis).Mul(a.clip.BobAmplitude * float64(v))
		pose = mgl64.Translate3D(off[0], off[1], off[2])
	}
	if a.spin != nil {
		angle, _, _ := a.spin.Update(dt)
		pose = pose.Mul4(mgl64.HomogRotate3D(float64(angle), unitAxis(a.clip.SpinAxis)))
	}
	return pose
}

// unitAxis normalizes v, treating a zero vector as +Y.
func unitAxis(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
