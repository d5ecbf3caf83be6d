package pool

import (
	"errors"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"spacedrive/internal/bounds"
)

// ErrPlacementExhausted is returned by Place when no free position was found within the attempt cap.
// The returned position is still usable; it may overlap another object.
var ErrPlacementExhausted = errors.New("pool: placement attempts exhausted")

// Place draws uniform positions inside b until obj's bounds at that position intersect none of others.
// others may include obj itself; entries with the same ID are skipped. maxAttempts <= 0 retries forever.
// On exhaustion the last position drawn is returned with ErrPlacementExhausted.
func Place(rng *rand.Rand, obj *SceneObject, others []SceneObject, b bounds.Box, maxAttempts int) (pos mgl64.Vec3, attempts int, err error) {
	for {
		attempts++
		pos = randomPoint(rng, b)
		if !collides(obj.boundsAt(pos), obj.ID, others) {
			return pos, attempts, nil
		}
		if maxAttempts > 0 && attempts >= maxAttempts {
			return pos, attempts, ErrPlacementExhausted
		}
	}
}

func collides(box bounds.Box, id int, others []SceneObject) bool {
	for i := range others {
		if others[i].ID == id {
			continue
		}
		if box.Intersects(others[i].Bounds) {
			return true
		}
	}
	return false
}

func randomPoint(rng *rand.Rand, b bounds.Box) mgl64.Vec3 {
	var p mgl64.Vec3
	for i := 0; i < 3; i++ {
		p[i] = b.Min[i] + rng.Float64()*(b.Max[i]-b.Min[i])
	}
	return p
}
