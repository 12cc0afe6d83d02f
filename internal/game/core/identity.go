package core

import "fmt"

// Role is what an already-authenticated caller is allowed to be.
type Role int

const (
	RoleInvalid Role = iota
	RolePlayer
	RoleObserver
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleObserver:
		return "observer"
	case RoleAdmin:
		return "admin"
	default:
		return "invalid"
	}
}

// Identity is a resolved caller. Player is only meaningful for RolePlayer.
type Identity struct {
	Role   Role
	Player int
}

// PlayerIdentity builds the identity of player idx.
func PlayerIdentity(idx int) Identity { return Identity{Role: RolePlayer, Player: idx} }

// Observer is the fog-free read-only identity.
var Observer = Identity{Role: RoleObserver, Player: -1}

// Admin is the identity allowed to start, stop and reset games.
var Admin = Identity{Role: RoleAdmin, Player: -1}

// IsPlayer reports whether the identity acts as a player.
func (id Identity) IsPlayer() bool { return id.Role == RolePlayer }

// SeesEverything reports whether queries skip fog for this identity.
func (id Identity) SeesEverything() bool {
	return id.Role == RoleObserver || id.Role == RoleAdmin
}

func (id Identity) String() string {
	if id.Role == RolePlayer {
		return fmt.Sprintf("player %d", id.Player)
	}
	return id.Role.String()
}

// VisibilityMask is a row-major per-tile visibility flag set.
type VisibilityMask struct {
	Size    int
	Visible []bool
}

// NewVisibilityMask returns an all-fogged mask.
func NewVisibilityMask(size int) VisibilityMask {
	return VisibilityMask{Size: size, Visible: make([]bool, size*size)}
}

// FullVisibility returns a mask with every tile visible.
func FullVisibility(size int) VisibilityMask {
	m := NewVisibilityMask(size)
	for i := range m.Visible {
		m.Visible[i] = true
	}
	return m
}

// IsVisible reports whether c is unfogged. Off-grid coordinates are fogged.
func (m VisibilityMask) IsVisible(c Coordinate) bool {
	if !c.IsValid(m.Size) {
		return false
	}
	return m.Visible[c.ToIndex(m.Size)]
}

// SetVisible marks c as unfogged.
func (m VisibilityMask) SetVisible(c Coordinate) {
	m.Visible[c.ToIndex(m.Size)] = true
}

// CountVisible returns the number of unfogged tiles.
func (m VisibilityMask) CountVisible() int {
	n := 0
	for _, v := range m.Visible {
		if v {
			n++
		}
	}
	return n
}
