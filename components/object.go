package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData holds an entity's XY collision object in the room's resolv
// space plus its vertical extent. The object's X/Y track the entity position
// in tile coordinates; the base height lives in PositionData and the occupied
// height range is [Pos.H, Pos.H+Extent).
type ObjectData struct {
	*resolv.Object
	Extent float64
}

// Solid reports whether other entities collide with this one.
func (o *ObjectData) Solid() bool {
	return o.Object != nil && o.Object.HasTags("solid")
}

var Object = donburi.NewComponentType[ObjectData]()
