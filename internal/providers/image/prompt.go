package image

import "fmt"

// BuildInstruction renders the edit instruction for one camera angle. The
// wording pins everything except the perspective: subject, lighting,
// location, mood and clothing must survive the regeneration, and the
// provider must not add text or watermarks.
func BuildInstruction(angleDescription string) string {
	return fmt.Sprintf(
		"Recreate this exact scene from the perspective of %s. "+
			"The subject, lighting, location, mood, clothing, and all other details must remain identical. "+
			"Only change the camera perspective. Do not add any text or watermarks.",
		angleDescription,
	)
}
