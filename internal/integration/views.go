package integration

import "math"

// View names, in the order they are sent to the model.
const (
	ViewLeft   = "LEFT"
	ViewRight  = "RIGHT"
	ViewFront  = "FRONT"
	ViewBack   = "BACK"
	ViewSky    = "SKY"
	ViewGround = "GROUND"
)

const (
	narrowYawOffset = 20.0
	verticalPitch   = 90.0
)

// View is one camera orientation inside a panorama.
type View struct {
	Name  string
	Yaw   float64
	Pitch float64
}

// ViewsFor returns the camera orientations captured for a round.
//
// Narrow-field rounds get two overlapping views 20 degrees either side of
// the heading at the round pitch. Standard rounds get the four horizontal
// quadrants relative to the heading at pitch 0, then straight up and
// straight down at yaw 0.
func ViewsFor(narrow bool, heading, pitch float64) []View {
	if narrow {
		return []View{
			{Name: ViewLeft, Yaw: heading - narrowYawOffset, Pitch: pitch},
			{Name: ViewRight, Yaw: heading + narrowYawOffset, Pitch: pitch},
		}
	}
	return []View{
		{Name: ViewFront, Yaw: normalizeYaw(heading), Pitch: 0},
		{Name: ViewRight, Yaw: normalizeYaw(heading + 90), Pitch: 0},
		{Name: ViewBack, Yaw: normalizeYaw(heading + 180), Pitch: 0},
		{Name: ViewLeft, Yaw: normalizeYaw(heading + 270), Pitch: 0},
		{Name: ViewSky, Yaw: 0, Pitch: -verticalPitch},
		{Name: ViewGround, Yaw: 0, Pitch: verticalPitch},
	}
}

func normalizeYaw(yaw float64) float64 {
	y := math.Mod(yaw, 360)
	if y < 0 {
		y += 360
	}
	return y
}
