package scene

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Detection is one star-convex object as reported by a detector.
type Detection struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Label     int       `json:"label"`
	Center    v3.Vec    `json:"center"`
	Distances []float64 `json:"distances"`
}

// Scene is an ordered set of detections.
type Scene struct {
	Detections map[ID]*Detection `json:"detections"`
	Order      []ID              `json:"order"`
	NameIndex  map[string]ID     `json:"name_index"`
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Detections: make(map[ID]*Detection),
		NameIndex:  make(map[string]ID),
	}
}

// Add appends d, assigning its ID from its name when unset. Adding two
// detections with the same name is an error.
func (sc *Scene) Add(d *Detection) error {
	if d.ID.IsZero() {
		d.ID = NewID(d.Name)
	}
	if _, ok := sc.Detections[d.ID]; ok {
		return fmt.Errorf("scene: duplicate detection %q", d.Name)
	}
	sc.Detections[d.ID] = d
	sc.Order = append(sc.Order, d.ID)
	if d.Name != "" {
		sc.NameIndex[d.Name] = d.ID
	}
	return nil
}

// Lookup returns the detection with the given name, or nil.
func (sc *Scene) Lookup(name string) *Detection {
	id, ok := sc.NameIndex[name]
	if !ok {
		return nil
	}
	return sc.Detections[id]
}

// Get returns the detection with the given ID, or nil.
func (sc *Scene) Get(id ID) *Detection {
	return sc.Detections[id]
}

// List returns the detections in insertion order.
func (sc *Scene) List() []*Detection {
	out := make([]*Detection, 0, len(sc.Order))
	for _, id := range sc.Order {
		if d := sc.Detections[id]; d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of detections.
func (sc *Scene) Len() int {
	return len(sc.Order)
}
