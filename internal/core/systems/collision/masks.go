package collision

// Mask is a bitset of object categories. A collidable's Mask says what it is, its
// CanHit mask says what it may strike.
type Mask uint32

const (
	MaskBarrier Mask = 1 << iota
	MaskPlayer
	MaskEnemy
	MaskObstacle

	MaskNone Mask = 0
	// MaskAgents is the movable set: collidables carrying one of these bits are
	// dynamic receivers, everything else with a mask is static.
	MaskAgents = MaskPlayer | MaskEnemy

	MaskBarrierOrEnemy  = MaskBarrier | MaskEnemy
	MaskBarrierOrPlayer = MaskBarrier | MaskPlayer
)

// Has reports whether m and o share a bit.
func (m Mask) Has(o Mask) bool { return m&o != 0 }

// Shape selects how a collidable maps onto grid cells.
type Shape uint8

const (
	// ShapeGridCell fills exactly the cell its position falls in.
	ShapeGridCell Shape = iota
	// ShapePoint touches the single cell its position falls in.
	ShapePoint
	// ShapeCircle touches every cell under its bounding square.
	ShapeCircle
)

// Kind tags the logical owner of a collidable. Listeners subscribe by the hitter's
// kind and switch on the receiver's kind.
type Kind uint8

const (
	KindNone Kind = iota
	KindAgent
	KindParticle
	KindProjectile
	KindBarrier
	KindDoor
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindAgent:
		return "agent"
	case KindParticle:
		return "particle"
	case KindProjectile:
		return "projectile"
	case KindBarrier:
		return "barrier"
	case KindDoor:
		return "door"
	case KindLight:
		return "light"
	default:
		return "none"
	}
}
