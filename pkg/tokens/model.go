package tokens

import (
	"errors"

	"github.com/philipparndt/tokenviz/pkg/geometry"
)

// ErrNoData is returned when a record list is empty
var ErrNoData = errors.New("no data")

// Record is one token occurrence with its reduced embedding vector.
// Duplicate IDs are expected; every occurrence is its own record.
type Record struct {
	ID     int
	Text   string
	Vector geometry.Vector3
}

// Set is an ordered list of records loaded from one source
type Set struct {
	Name    string
	Records []Record
}

// NewSet creates an empty record set
func NewSet(name string) *Set {
	return &Set{
		Name:    name,
		Records: make([]Record, 0),
	}
}

// Add appends a record
func (s *Set) Add(r Record) {
	s.Records = append(s.Records, r)
}

// Len returns the number of records
func (s *Set) Len() int {
	return len(s.Records)
}

// BoundingBox calculates the bounding box of all vectors
func (s *Set) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, r := range s.Records {
		bbox.Extend(r.Vector)
	}
	return bbox
}

// IndexOf returns the index of the first record with the given ID, or -1
func (s *Set) IndexOf(id int) int {
	for i, r := range s.Records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
