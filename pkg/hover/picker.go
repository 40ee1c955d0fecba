// Package hover tracks which particle is under the pointer and which one is
// pinned by an explicit highlight request.
package hover

import (
	"time"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/particles"
)

const (
	// HitThreshold is the maximum ray distance, in world units, of a hit
	HitThreshold = 5.0

	HoverScale  = 1.5
	PinScale    = 2.0
	PinDuration = 2 * time.Second

	// Annotation offset from the pointer in pixels
	AnnotationOffsetX = 15.0
	AnnotationOffsetY = -15.0

	// None marks the absence of a hovered or pinned particle
	None = -1

	sourceHover = "hover"
	sourcePin   = "pin"
)

// Annotation is the floating detail box of the hovered particle
type Annotation struct {
	Visible bool
	ID      int
	Text    string
	X, Y    float64
}

// Picker owns the hover and pin state of one particle field
type Picker struct {
	field *particles.Field

	pointerX, pointerY float64
	hasPointer         bool

	hovered    int
	annotation Annotation

	pinned      int
	pinnedUntil time.Time
}

// NewPicker creates a picker emphasizing particles of field
func NewPicker(field *particles.Field) *Picker {
	return &Picker{field: field, hovered: None, pinned: None}
}

// PointerMoved records the pointer position in viewport pixels
func (p *Picker) PointerMoved(x, y float64) {
	p.pointerX, p.pointerY = x, y
	p.hasPointer = true
}

// PointerLeft forgets the pointer; the next Update clears the hover
func (p *Picker) PointerLeft() {
	p.hasPointer = false
}

// Pointer returns the last pointer position and whether it is inside
func (p *Picker) Pointer() (x, y float64, ok bool) {
	return p.pointerX, p.pointerY, p.hasPointer
}

// Hovered returns the hovered index or None
func (p *Picker) Hovered() int {
	return p.hovered
}

// Pinned returns the pinned index or None
func (p *Picker) Pinned() int {
	return p.pinned
}

// PinnedUntil returns when the current pin expires
func (p *Picker) PinnedUntil() time.Time {
	return p.pinnedUntil
}

// Annotation returns the current annotation
func (p *Picker) Annotation() Annotation {
	return p.annotation
}

// Update picks the particle under the pointer. A projection error clears
// the hover and is returned.
func (p *Picker) Update(view camera.View, width, height float64) error {
	if !p.hasPointer || p.field.Len() == 0 {
		p.ClearHover()
		return nil
	}

	ray, err := view.Ray(p.pointerX, p.pointerY, width, height)
	if err != nil {
		p.ClearHover()
		return err
	}

	i, ok := p.field.HitTest(ray, HitThreshold)
	if !ok {
		p.ClearHover()
		return nil
	}

	if i != p.hovered {
		p.clearHoverEmphasis()
		p.field.SetEmphasis(i, sourceHover, HoverScale)
		p.hovered = i
	}

	particle := p.field.Particle(i)
	p.annotation = Annotation{
		Visible: true,
		ID:      particle.ID,
		Text:    particle.Text,
		X:       p.pointerX + AnnotationOffsetX,
		Y:       p.pointerY + AnnotationOffsetY,
	}
	return nil
}

// ClearHover reverts the hover emphasis and hides the annotation
func (p *Picker) ClearHover() {
	p.clearHoverEmphasis()
	p.annotation = Annotation{}
}

func (p *Picker) clearHoverEmphasis() {
	if p.hovered != None {
		p.field.ClearEmphasis(p.hovered, sourceHover)
		p.hovered = None
	}
}

// Pin emphasizes particle i until now + PinDuration. Pinning the same index
// restarts the timer; pinning another index reverts the previous pin.
func (p *Picker) Pin(i int, now time.Time) bool {
	if !p.field.Valid(i) {
		return false
	}
	if p.pinned != None && p.pinned != i {
		p.field.ClearEmphasis(p.pinned, sourcePin)
	}
	p.field.SetEmphasis(i, sourcePin, PinScale)
	p.pinned = i
	p.pinnedUntil = now.Add(PinDuration)
	return true
}

// Expire reverts the pin once its time is up and reports whether it did
func (p *Picker) Expire(now time.Time) bool {
	if p.pinned == None || now.Before(p.pinnedUntil) {
		return false
	}
	p.Unpin()
	return true
}

// Unpin reverts the pin immediately
func (p *Picker) Unpin() {
	if p.pinned != None {
		p.field.ClearEmphasis(p.pinned, sourcePin)
		p.pinned = None
	}
	p.pinnedUntil = time.Time{}
}

// Reset drops hover, pin and pointer
func (p *Picker) Reset() {
	p.ClearHover()
	p.Unpin()
	p.hasPointer = false
}
