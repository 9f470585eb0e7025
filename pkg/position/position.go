package position

// Rect is an axis-aligned rectangle in host coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Side is the requested placement side of the panel.
type Side uint8

const (
	SideBottom Side = iota
	SideTop
	SideLeft
	SideRight
)

// String returns the string representation of the Side.
func (s Side) String() string {
	switch s {
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Placement is a computed panel position. Rotation is the rotation in
// degrees applied to an arrow glyph that points up by default, and
// TransformOrigin is the CSS origin the panel scales out from.
type Placement struct {
	X, Y            float64
	Rotation        float64
	TransformOrigin string
}

// Positioner computes a Placement from target and content geometry.
// Implementations must be pure; the popover core re-invokes them
// whenever the panel opens or geometry changes.
type Positioner interface {
	Place(target, content Rect, side Side) Placement
}

// Basic is a side-based positioner that centers the panel on the
// requested side, offset by Gap.
type Basic struct {
	// Gap is the distance in host units between target and panel.
	Gap float64
}

// Place implements Positioner.
func (b Basic) Place(target, content Rect, side Side) Placement {
	centerX := target.X + (target.Width-content.Width)/2
	centerY := target.Y + (target.Height-content.Height)/2

	switch side {
	case SideTop:
		return Placement{
			X:               centerX,
			Y:               target.Y - content.Height - b.Gap,
			Rotation:        180,
			TransformOrigin: "bottom center",
		}
	case SideLeft:
		return Placement{
			X:               target.X - content.Width - b.Gap,
			Y:               centerY,
			Rotation:        90,
			TransformOrigin: "right center",
		}
	case SideRight:
		return Placement{
			X:               target.X + target.Width + b.Gap,
			Y:               centerY,
			Rotation:        -90,
			TransformOrigin: "left center",
		}
	default: // SideBottom
		return Placement{
			X:               centerX,
			Y:               target.Y + target.Height + b.Gap,
			Rotation:        0,
			TransformOrigin: "top center",
		}
	}
}
