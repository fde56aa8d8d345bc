package scene

import "github.com/go-gl/mathgl/mgl32"

// Light is a point light regenerated together with the spheres. The renderer decides how
// (and whether) to use it; lights are not animated by Tick.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}
