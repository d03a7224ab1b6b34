package grove

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func vec3(x, y, z float64) *mgl64.Vec3 {
	v := mgl64.Vec3{x, y, z}
	return &v
}

// --- localMatrix ---

func TestLocalMatrixNil(t *testing.T) {
	assertMatrix(t, "nil", localMatrix(nil), mgl64.Ident4())
	assertMatrix(t, "empty", localMatrix(&TRS{}), mgl64.Ident4())
}

func TestLocalMatrixTranslation(t *testing.T) {
	got := localMatrix(&TRS{Position: vec3(1, 2, 3)})
	assertMatrix(t, "translation", got, mgl64.Translate3D(1, 2, 3))
}

func TestLocalMatrixScale(t *testing.T) {
	got := localMatrix(&TRS{Scale: vec3(2, 3, 4)})
	assertMatrix(t, "scale", got, mgl64.Scale3D(2, 3, 4))
}

func TestLocalMatrixRotation90(t *testing.T) {
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	got := localMatrix(&TRS{Rotation: &q})
	// +X rotates onto -Z about +Y.
	assertVec(t, "x axis", transformDirection(got, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{0, 0, -1})
}

func TestLocalMatrixUnnormalizedRotation(t *testing.T) {
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}).Scale(5)
	got := localMatrix(&TRS{Rotation: &q})
	assertVec(t, "x axis", transformDirection(got, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{0, 1, 0})
}

func TestLocalMatrixOrder(t *testing.T) {
	// Scale applies first, then rotation, then translation.
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	got := localMatrix(&TRS{Position: vec3(10, 0, 0), Rotation: &q, Scale: vec3(2, 2, 2)})
	assertVec(t, "point", transformPoint(got, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{10, 2, 0})
}

// --- invert ---

func TestInvert(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DY(0.7)).Mul4(mgl64.Scale3D(2, 2, 2))
	assertMatrix(t, "m*inv(m)", m.Mul4(invert(m)), mgl64.Ident4())
}

func TestInvertSingular(t *testing.T) {
	assertMatrix(t, "singular", invert(mgl64.Scale3D(0, 1, 1)), mgl64.Ident4())
}

// --- panelScale / coordinate conversion ---

func TestPanelScale(t *testing.T) {
	assertNear(t, "identity", panelScale(mgl64.Ident4()), 1)
	assertNear(t, "scaled", panelScale(mgl64.Translate3D(5, 5, 5).Mul4(mgl64.Scale3D(1, 3, 1))), 3)
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	m := mgl64.Translate3D(1, 0, -2).Mul4(mgl64.HomogRotate3DX(1.1))
	p := mgl64.Vec3{0.3, -0.4, 0.5}
	local := WorldToLocal(m, p)
	assertVec(t, "round trip", LocalToWorld(m, local), p)
}

func TestTranslationOf(t *testing.T) {
	assertVec(t, "translation", translationOf(mgl64.Translate3D(4, 5, 6)), mgl64.Vec3{4, 5, 6})
}
