package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

const KindMovement ComponentKind = "Movement"

const (
	minSpeedForRotation = 2
	jumpingForce        = 2.4
	gravity             = 2.0
	groundLevel         = 1.0
)

type MovementType uint8

const (
	// MovementNormal moves along forward rotated by the owner's orientation.
	MovementNormal MovementType = iota
	// MovementFixedDirection moves along forward as given, ignoring rotation.
	MovementFixedDirection
	// MovementFixedRotation moves like MovementNormal but never rolls the owner.
	MovementFixedRotation
)

var movementTypeNames = map[string]MovementType{
	"normal":          MovementNormal,
	"fixed_direction": MovementFixedDirection,
	"fixed_rotation":  MovementFixedRotation,
}

type MovementComponent struct {
	ComponentBase
	Type MovementType

	// Directed movement heads toward Target instead of Forward.
	Directed bool
	Target   mgl32.Vec3

	Forward          mgl32.Vec3
	Velocity         float32
	MinVelocity      float32
	MaxVelocity      float32
	Slowdown         float32
	ConstantMovement bool
	FinalValue       mgl32.Vec3

	CanRoll            bool
	CurrentAngle       mgl32.Vec3 // degrees
	AngularVelocity    mgl32.Vec3
	MaxAngularVelocity float32
	AngularSlowdown    float32

	Ascending        bool
	Descending       bool
	VerticalVelocity float32
}

func NewMovementComponent() *MovementComponent {
	return &MovementComponent{
		Type:               MovementNormal,
		Forward:            mgl32.Vec3{0, 0, -1},
		MinVelocity:        -16,
		MaxVelocity:        16,
		Slowdown:           4,
		MaxAngularVelocity: 6,
		AngularSlowdown:    8,
	}
}

func (m *MovementComponent) Kind() ComponentKind { return KindMovement }

func (m *MovementComponent) Deserialize(f config.Fields) error {
	if f.Has("movementType") {
		name := f.String("movementType", "normal")
		t, ok := movementTypeNames[name]
		if !ok {
			return errors.Errorf("unknown movementType %q", name)
		}
		m.Type = t
	}
	m.Directed = f.Bool("directedMovementMode", m.Directed)
	m.Target = f.Vec3("target_point", m.Target)

	// forward is given in world space; store it relative to the owner's
	// placement at load time.
	fwd := f.Vec3("forward", m.Forward)
	if m.owner != nil {
		fwd = m.owner.LocalToWorld().Inv().Mul4x1(fwd.Vec4(0)).Vec3()
	}
	if fwd.Len() > 0 {
		fwd = fwd.Normalize()
	}
	m.Forward = fwd

	m.MaxVelocity = f.Float("max_positive_speed", m.MaxVelocity)
	m.MinVelocity = -f.Float("max_negative_speed", m.MaxVelocity)
	m.Slowdown = f.Float("linear_slowdown_factor", m.Slowdown)
	m.SetSpeed(f.Float("initial_speed", 0))
	m.ConstantMovement = f.Bool("constant_movement", m.ConstantMovement)
	m.FinalValue = f.Vec3("final_value", m.FinalValue)

	m.CanRoll = f.Bool("canRoll", m.CanRoll)
	m.AngularVelocity = f.Vec3("initial_angular_velocity", m.AngularVelocity)
	m.MaxAngularVelocity = f.Float("max_angular_velocity", m.MaxAngularVelocity)
	m.AngularSlowdown = f.Float("angular_slowdown_factor", m.AngularSlowdown)
	return nil
}

func (m *MovementComponent) clampSpeed() {
	m.Velocity = mgl32.Clamp(m.Velocity, m.MinVelocity, m.MaxVelocity)
}

func (m *MovementComponent) SetSpeed(v float32) {
	m.Velocity = v
	m.clampSpeed()
}

func (m *MovementComponent) AdjustSpeed(delta float32) {
	m.Velocity += delta
	m.clampSpeed()
}

func (m *MovementComponent) IsMoving() bool { return m.Velocity > minSpeedForRotation }

// Jump starts a jump if the owner is grounded.
func (m *MovementComponent) Jump() {
	if m.Ascending || m.Descending {
		return
	}
	m.VerticalVelocity = jumpingForce
	m.Ascending = true
}

func (m *MovementComponent) roll() {
	m.AngularVelocity[0] = min(0.8*m.Velocity, m.MaxAngularVelocity)
}

// Direction is the current world-space movement direction.
func (m *MovementComponent) Direction() mgl32.Vec3 {
	if m.Directed && m.owner != nil {
		d := m.Target.Sub(m.owner.WorldCenter())
		if d.Len() > 0 {
			return d.Normalize()
		}
		return mgl32.Vec3{}
	}
	if m.Type == MovementFixedDirection || m.owner == nil {
		return m.Forward
	}
	return m.owner.Transform.RotationMatrix().Mul4x1(m.Forward.Vec4(0)).Vec3()
}

func (m *MovementComponent) Update(dt float32) {
	if m.owner == nil {
		return
	}
	t := &m.owner.Transform
	t.Position = t.Position.Add(m.Direction().Mul(m.Velocity * dt))

	m.updateAngle(dt)
	if m.Type != MovementFixedRotation && m.CanRoll {
		t.Rotation[0] = -mgl32.DegToRad(m.CurrentAngle[0])
	}
	if !m.ConstantMovement {
		m.slowDown(dt)
	}
	m.updateJump(dt)
}

func (m *MovementComponent) updateAngle(dt float32) {
	var sign float32
	switch {
	case m.Velocity > 0:
		sign = 1
	case m.Velocity < 0:
		sign = -1
	}
	m.CurrentAngle = m.CurrentAngle.Add(m.AngularVelocity.Mul(sign * dt))
	for i := range m.CurrentAngle {
		if m.CurrentAngle[i] > 360 {
			m.CurrentAngle[i] -= 360
		}
	}
}

func (m *MovementComponent) slowDown(dt float32) {
	if m.Velocity == 0 || m.Ascending || m.Descending {
		return
	}
	speed := float32(math.Abs(float64(m.Velocity))) - m.Slowdown*dt
	if speed < 0 {
		speed = 0
	}
	if m.Velocity < 0 {
		speed = -speed
	}
	m.Velocity = speed
	if m.CanRoll {
		m.roll()
	}
}

func (m *MovementComponent) updateJump(dt float32) {
	y := &m.owner.Transform.Position[1]
	if m.Ascending || m.Descending {
		*y += m.VerticalVelocity * dt
		m.VerticalVelocity -= gravity * dt
	}
	if m.Ascending {
		m.VerticalVelocity = max(m.VerticalVelocity, 0)
		if m.VerticalVelocity == 0 && !m.Descending {
			m.Ascending, m.Descending = false, true
		}
	}
	if m.Descending {
		*y = max(*y, groundLevel)
		if *y == groundLevel {
			m.VerticalVelocity = 0
			m.Descending = false
		}
	}
}
