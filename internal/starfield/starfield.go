package starfield

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
)

// Options controls star generation.
// Spread is the half extent of the cube the stars are scattered in. BaseSize is the mean point size.
// Seed == 0 uses a time-based seed.
type Options struct {
	Count    int
	Spread   float32
	BaseSize float32
	Seed     uint64
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Count:    5000,
		Spread:   2000,
		BaseSize: 10,
	}
}

// Palette is the set of star tints, as 0xRRGGBB.
var Palette = [...]uint32{0xdeebff, 0xffe07a, 0xffeed1, 0xd6fffc, 0xffe3f1}

// timeScale converts elapsed seconds into the twinkle/roll clock.
const timeScale = 5

// rollRate is radians of roll about Z per clock unit.
const rollRate = 0.01

// Star is one background point in field space.
type Star struct {
	Position [3]float32
	Color    [3]uint8
}

// Field is a cloud of stars that rolls slowly, twinkles, and travels with the camera
// so it never runs out.
type Field struct {
	Stars []Star
	// Sizes holds the current point size of each star.
	Sizes []float32
	// Roll is the current rotation about Z in radians.
	Roll float32
	// Offset is the camera displacement accumulated since the first Update.
	Offset [3]float32

	base     float32
	anchor   [3]float32
	anchored bool
}

// Generate scatters opts.Count stars uniformly in [-Spread, Spread] on every axis.
func Generate(opts Options) *Field {
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Spread <= 0 {
		opts.Spread = 2000
	}
	if opts.BaseSize <= 0 {
		opts.BaseSize = 10
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed>>1|1))

	f := &Field{
		Stars: make([]Star, opts.Count),
		Sizes: make([]float32, opts.Count),
		base:  opts.BaseSize,
	}
	for i := range f.Stars {
		s := &f.Stars[i]
		for a := 0; a < 3; a++ {
			s.Position[a] = (r.Float32()*2 - 1) * opts.Spread
		}
		c := Palette[r.IntN(len(Palette))]
		s.Color = [3]uint8{uint8(c >> 16), uint8(c >> 8), uint8(c)}
		f.Sizes[i] = opts.BaseSize
	}
	return f
}

// Update advances the roll and twinkle to elapsed seconds and shifts the field by however far
// the camera moved since the previous call.
func (f *Field) Update(elapsed float32, camera [3]float32) {
	clock := elapsed * timeScale
	f.Roll = rollRate * clock
	for i := range f.Sizes {
		f.Sizes[i] = f.base * (1 + math32.Sin(0.1*float32(i)+clock))
	}

	if !f.anchored {
		f.anchor = camera
		f.anchored = true
		return
	}
	for a := 0; a < 3; a++ {
		f.Offset[a] += camera[a] - f.anchor[a]
	}
	f.anchor = camera
}

// WorldPosition returns star i rolled about Z and shifted by the camera offset.
func (f *Field) WorldPosition(i int) [3]float32 {
	p := f.Stars[i].Position
	sin, cos := math32.Sin(f.Roll), math32.Cos(f.Roll)
	return [3]float32{
		p[0]*cos - p[1]*sin + f.Offset[0],
		p[0]*sin + p[1]*cos + f.Offset[1],
		p[2] + f.Offset[2],
	}
}
