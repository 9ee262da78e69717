package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-forward/config"
)

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-5), "want\n%v\ngot\n%v", want, got)
}

func TestTransformMatrixComposesTRS(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.Vec3{0.3, 0.5, 0.7}
	tr.Scale = mgl32.Vec3{2, 3, 4}

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(0.5)).
		Mul4(mgl32.HomogRotate3DX(0.3)).
		Mul4(mgl32.HomogRotate3DZ(0.7)).
		Mul4(mgl32.Scale3D(2, 3, 4))
	assertMat4(t, want, tr.Matrix())
}

func TestTransformRotationOrders(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl32.Vec3{0.3, 0.5, 0.7}
	x, y, z := mgl32.HomogRotate3DX(0.3), mgl32.HomogRotate3DY(0.5), mgl32.HomogRotate3DZ(0.7)

	cases := map[EulerOrder]mgl32.Mat4{
		EulerYXZ: y.Mul4(x).Mul4(z),
		EulerXYZ: x.Mul4(y).Mul4(z),
		EulerXZY: x.Mul4(z).Mul4(y),
		EulerYZX: y.Mul4(z).Mul4(x),
		EulerZXY: z.Mul4(x).Mul4(y),
		EulerZYX: z.Mul4(y).Mul4(x),
	}
	for order, want := range cases {
		tr.Order = order
		assertMat4(t, want, tr.RotationMatrix())
	}
}

func TestParseEulerOrder(t *testing.T) {
	o, err := ParseEulerOrder("zyx")
	require.NoError(t, err)
	assert.Equal(t, EulerZYX, o)
	assert.Equal(t, "ZYX", o.String())

	_, err = ParseEulerOrder("XXY")
	assert.Error(t, err)
}

func TestTransformDeserializeRoundTrip(t *testing.T) {
	tr := NewTransform()
	require.NoError(t, tr.Deserialize(config.Fields{
		"position": []any{1.0, 2.0, 3.0},
		"rotation": []any{0.0, 0.0, 0.0},
		"scale":    []any{1.0, 1.0, 1.0},
	}))
	assertMat4(t, mgl32.Translate3D(1, 2, 3), tr.Matrix())

	again := NewTransform()
	require.NoError(t, again.Deserialize(tr.Serialize()))
	assert.Equal(t, tr.Matrix(), again.Matrix())
}

func TestTransformDeserializeDegreesAndOrder(t *testing.T) {
	tr := NewTransform()
	require.NoError(t, tr.Deserialize(config.Fields{
		"rotation":      []any{90, 0, 0},
		"rotationOrder": "XYZ",
	}))
	assert.InDelta(t, mgl32.DegToRad(90), tr.Rotation.X(), 1e-6)
	assert.Equal(t, EulerXYZ, tr.Order)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)

	again := NewTransform()
	require.NoError(t, again.Deserialize(tr.Serialize()))
	assert.Equal(t, EulerXYZ, again.Order)
	assertMat4(t, tr.Matrix(), again.Matrix())

	assert.Error(t, tr.Deserialize(config.Fields{"rotationOrder": "nope"}))
}
