package gekko

import "github.com/gekko3d/gekko-forward/config"

const KindBall ComponentKind = "Ball"

// BallComponent marks a rotating body. Mesh renderers parented under a ball
// are drawn in the special bucket with the ball's roll axis and angle.
type BallComponent struct {
	ComponentBase
}

func (b *BallComponent) Kind() ComponentKind { return KindBall }

func (b *BallComponent) Deserialize(config.Fields) error { return nil }
