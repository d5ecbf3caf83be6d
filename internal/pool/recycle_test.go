package pool

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopObjectsRecyclesBehind(t *testing.T) {
	viewer := Viewer{Position: mgl64.Vec3{5, 0, 100}}
	start := mgl64.Vec3{12, -3, viewer.Position[2] + 250}
	o := SceneObject{}
	o.Transform.Position = start
	p := newSolo(t, o)
	require.Equal(t, 0.1, p.cfg.RecycleChance)

	var recycled []int
	calls := 0
	for ; calls < 1000 && len(recycled) == 0; calls++ {
		recycled = p.LoopObjects(viewer)
	}
	require.Equal(t, []int{0}, recycled, "not recycled after %d calls", calls)

	got, _ := p.Object(0)
	ahead := viewer.Position[2] - got.Transform.Position[2]
	assert.GreaterOrEqual(t, ahead, float64(p.cfg.AheadMin))
	assert.LessOrEqual(t, ahead, float64(p.cfg.AheadMax))
	assert.Equal(t, start[0], got.Transform.Position[0])
	assert.Equal(t, start[1], got.Transform.Position[1])
	assert.True(t, got.Bounds.Contains(got.Transform.Position))
	assert.Equal(t, uint64(1), p.Stats().Recycled)
}

func TestLoopObjectsKeepsWithinMargin(t *testing.T) {
	viewer := Viewer{Position: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{0, 0, -3}}
	for _, behind := range []float64{-400, 0, 150, 200} {
		o := SceneObject{}
		o.Transform.Position = mgl64.Vec3{0, 0, viewer.Position[2] + behind}
		p := newSolo(t, o)
		p.cfg.RecycleChance = 1

		for n := 0; n < 200; n++ {
			assert.Empty(t, p.LoopObjects(viewer), "behind %v", behind)
		}
		got, _ := p.Object(0)
		assert.Equal(t, o.Transform.Position, got.Transform.Position)
	}
}

func TestLoopObjectsAlongAnyAxis(t *testing.T) {
	viewer := Viewer{Position: mgl64.Vec3{0, 0, 0}, Forward: mgl64.Vec3{1, 0, 0}}
	o := SceneObject{}
	o.Transform.Position = mgl64.Vec3{-300, 7, 9}
	p := newSolo(t, o)
	p.cfg.RecycleChance = 1

	assert.Equal(t, []int{0}, p.LoopObjects(viewer))
	got, _ := p.Object(0)
	assert.GreaterOrEqual(t, got.Transform.Position[0], float64(p.cfg.AheadMin))
	assert.Equal(t, 7.0, got.Transform.Position[1])
	assert.Equal(t, 9.0, got.Transform.Position[2])
}

func TestViewerDir(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, Viewer{}.Dir())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, Viewer{Forward: mgl64.Vec3{0, 4, 0}}.Dir())
	v := Viewer{Position: mgl64.Vec3{0, 0, 10}}
	assert.Equal(t, 5.0, v.Behind(mgl64.Vec3{3, 3, 15}))
	assert.Equal(t, -5.0, v.Behind(mgl64.Vec3{0, 0, 5}))
}

func TestNearestAhead(t *testing.T) {
	at := func(x, y, z float64) SceneObject {
		o := SceneObject{Transform: NewTransform()}
		o.Transform.Position = mgl64.Vec3{x, y, z}
		return o
	}
	p := &Pool{objects: []SceneObject{
		at(0, 0, 10),  // behind
		at(0, 0, -50), // ahead, far
		at(3, 4, -2),  // ahead, nearest
	}}
	for i := range p.objects {
		p.objects[i].ID = i
	}
	viewer := Viewer{}

	id, ok := p.Nearest(viewer)
	require.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = p.Nearest(Viewer{Position: mgl64.Vec3{0, 0, -100}})
	assert.False(t, ok, "everything is behind")
}
