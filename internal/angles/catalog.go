package angles

// Spec names a camera perspective and carries the natural-language
// description handed to the image provider. The description does the heavy
// lifting: it states the framing the model must reproduce.
type Spec struct {
	Name        string
	Description string
}

// Count is the fixed size of the catalog and of every result set derived
// from it.
const Count = 6

var catalog = [Count]Spec{
	{
		Name:        "High Angle",
		Description: "A definitive high-angle shot. The camera is positioned high above the subject, tilted down. This perspective must make the subject appear smaller and more vulnerable. The background should show the ground/floor more prominently. Enforce correct perspective lines that converge downwards.",
	},
	{
		Name:        "Low Angle",
		Description: "A definitive low-angle shot. The camera is positioned low to the ground, tilted up at the subject. This perspective must make the subject appear powerful, dominant, and larger than life. The background should show more of the ceiling or sky. Enforce correct perspective lines that converge upwards.",
	},
	{
		Name:        "Close-Up",
		Description: "A tight close-up shot, framing the subject's face to capture subtle emotion. Maintain the original lighting and expression precisely.",
	},
	{
		Name:        "Wide Shot",
		Description: "A wide shot that shows the full subject from head to toe, including ample space around them to clearly establish the environment and location.",
	},
	{
		Name:        "Over-the-Shoulder",
		Description: "An over-the-shoulder shot. The camera is placed directly behind a subject, looking over their shoulder at the scene. The shoulder and side of the head of the foreground subject must be visible in the frame.",
	},
	{
		Name:        "Dutch Tilt",
		Description: "A Dutch tilt (or Dutch angle) shot. The entire camera must be tilted on its axis, creating a diagonal composition that conveys a sense of unease, tension, or disorientation.",
	},
}

// Catalog returns the six camera angles in display order. The order is
// significant: result sets and history records preserve it.
func Catalog() []Spec {
	out := make([]Spec, Count)
	copy(out[:], catalog[:])
	return out
}
