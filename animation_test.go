package grove

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func TestAnimatorSpin(t *testing.T) {
	a := newAnimator(&AnimationClip{SpinAxis: mgl64.Vec3{0, 0, 1}, SpinPeriod: 2})

	// Exact halves avoid float32 accumulation drift.
	a.update(0.25)
	pose := a.update(0.25)
	x := transformDirection(pose, mgl64.Vec3{1, 0, 0})
	if math.Abs(x[0]) > 1e-4 || math.Abs(x[1]-1) > 1e-4 {
		t.Errorf("x axis after a quarter turn = %v, want (0,1,0)", x)
	}
}

func TestAnimatorSpinLoops(t *testing.T) {
	a := newAnimator(&AnimationClip{SpinAxis: mgl64.Vec3{0, 1, 0}, SpinPeriod: 1})
	a.update(0.5)
	a.update(0.5)
	pose := a.update(0.25)
	// One full turn plus a quarter.
	x := transformDirection(pose, mgl64.Vec3{1, 0, 0})
	if x.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-3 {
		t.Errorf("x axis = %v, want (0,0,-1)", x)
	}
}

func TestAnimatorBob(t *testing.T) {
	a := newAnimator(&AnimationClip{
		BobAxis:      mgl64.Vec3{0, 2, 0},
		BobAmplitude: 0.1,
		BobPeriod:    2,
		BobEase:      ease.Linear,
	})

	start := translationOf(a.update(0))
	if math.Abs(start[1]+0.1) > 1e-6 {
		t.Errorf("start = %v, want y=-0.1", start)
	}
	mid := translationOf(a.update(0.5))
	if math.Abs(mid[1]) > 1e-6 {
		t.Errorf("quarter period = %v, want y=0", mid)
	}
	top := translationOf(a.update(0.5))
	if math.Abs(top[1]-0.1) > 1e-6 {
		t.Errorf("half period = %v, want y=0.1", top)
	}
	back := translationOf(a.update(0.5))
	if math.Abs(back[1]) > 1e-6 {
		t.Errorf("three quarters = %v, want y=0 on the way back", back)
	}
}

func TestAnimatorStill(t *testing.T) {
	a := newAnimator(&AnimationClip{})
	assertMatrix(t, "pose", a.update(1), mgl64.Ident4())
}

func TestUnitAxisZero(t *testing.T) {
	assertVec(t, "zero", unitAxis(mgl64.Vec3{}), mgl64.Vec3{0, 1, 0})
	assertVec(t, "scaled", unitAxis(mgl64.Vec3{3, 0, 0}), mgl64.Vec3{1, 0, 0})
}
