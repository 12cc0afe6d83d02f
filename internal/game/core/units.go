package core

import (
	"fmt"
	"sort"
)

// MaxPlayers is the largest roster a game supports.
const MaxPlayers = 4

// UnitKind tags the variant of a board object.
type UnitKind int

const (
	UnitCity UnitKind = iota
	UnitWorker
	UnitArmy
)

func (k UnitKind) String() string {
	switch k {
	case UnitCity:
		return "city"
	case UnitWorker:
		return "worker"
	case UnitArmy:
		return "army"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseUnitKind maps a request string onto a unit kind.
func ParseUnitKind(s string) (UnitKind, error) {
	switch s {
	case "city":
		return UnitCity, nil
	case "worker":
		return UnitWorker, nil
	case "army":
		return UnitArmy, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidUnitKind)
	}
}

// UnitID identifies a board object for its whole lifetime, across owners.
type UnitID int

// Damageable is implemented by anything that can be hit in combat.
type Damageable interface {
	TakeDamage(damage int)
	IsDead() bool
}

// Unit is a city, worker or army on the grid.
// HP is only meaningful for armies; workers die to any damage.
type Unit struct {
	ID    UnitID
	Kind  UnitKind
	Owner int
	Pos   Coordinate
	Moved bool
	HP    int

	killed bool
}

var _ Damageable = (*Unit)(nil)

// IsMobile reports whether the unit can be moved at all.
func (u *Unit) IsMobile() bool { return u.Kind != UnitCity }

// DistanceTo returns the Manhattan distance from the unit to c.
func (u *Unit) DistanceTo(c Coordinate) int { return u.Pos.DistanceTo(c) }

// CanMoveTo reports whether dst is a legal one-step relocation.
func (u *Unit) CanMoveTo(dst Coordinate) bool {
	return u.IsMobile() && u.Pos.DistanceTo(dst) == 1
}

// MoveTo relocates the unit and consumes its move for this turn.
// Illegal destinations are ignored.
func (u *Unit) MoveTo(dst Coordinate) {
	if !u.CanMoveTo(dst) {
		return
	}
	u.Pos = dst
	u.Moved = true
}

// TakeDamage applies combat damage.
func (u *Unit) TakeDamage(damage int) {
	switch u.Kind {
	case UnitArmy:
		u.HP -= damage
	case UnitWorker:
		u.killed = true
	default:
		panic(fmt.Sprintf("unit %d of kind %s cannot take damage", u.ID, u.Kind))
	}
}

// IsDead reports whether the unit should be removed from the board.
func (u *Unit) IsDead() bool {
	switch u.Kind {
	case UnitArmy:
		return u.HP <= 0
	case UnitWorker:
		return u.killed
	default:
		return false
	}
}

// Roster is the arena of every board object in a game, indexed by id.
// Ownership is the Owner field; moving a unit between players is a
// single field write, so no object is ever held by two players.
type Roster struct {
	units  map[UnitID]*Unit
	nextID UnitID
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{units: make(map[UnitID]*Unit), nextID: 1}
}

// Add places a new object on the board and returns it.
func (r *Roster) Add(kind UnitKind, owner int, pos Coordinate, hp int) *Unit {
	u := &Unit{ID: r.nextID, Kind: kind, Owner: owner, Pos: pos}
	if kind == UnitArmy {
		u.HP = hp
	}
	r.units[u.ID] = u
	r.nextID++
	return u
}

// Get returns the unit with id, or nil.
func (r *Roster) Get(id UnitID) *Unit {
	return r.units[id]
}

// Remove deletes a unit from the board.
func (r *Roster) Remove(id UnitID) {
	delete(r.units, id)
}

// Transfer hands a unit to newOwner.
func (r *Roster) Transfer(id UnitID, newOwner int) {
	u, ok := r.units[id]
	if !ok {
		panic(fmt.Sprintf("transfer of unknown unit %d", id))
	}
	u.Owner = newOwner
}

// Len returns the number of objects on the board.
func (r *Roster) Len() int { return len(r.units) }

// Select returns every unit matching keep, in creation order.
func (r *Roster) Select(keep func(*Unit) bool) []*Unit {
	out := make([]*Unit, 0)
	for _, u := range r.units {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All returns every unit in creation order.
func (r *Roster) All() []*Unit {
	return r.Select(func(*Unit) bool { return true })
}

// Owned returns the units of one kind held by owner.
func (r *Roster) Owned(owner int, kind UnitKind) []*Unit {
	return r.Select(func(u *Unit) bool { return u.Owner == owner && u.Kind == kind })
}

// OwnedBy returns every unit held by owner.
func (r *Roster) OwnedBy(owner int) []*Unit {
	return r.Select(func(u *Unit) bool { return u.Owner == owner })
}

// At returns every unit standing on c.
func (r *Roster) At(c Coordinate) []*Unit {
	return r.Select(func(u *Unit) bool { return u.Pos == c })
}

// CityAt returns the city on c, or nil.
func (r *Roster) CityAt(c Coordinate) *Unit {
	for _, u := range r.units {
		if u.Kind == UnitCity && u.Pos == c {
			return u
		}
	}
	return nil
}

// Count returns how many units of kind owner holds.
func (r *Roster) Count(owner int, kind UnitKind) int {
	n := 0
	for _, u := range r.units {
		if u.Owner == owner && u.Kind == kind {
			n++
		}
	}
	return n
}
