package montecarlo

import "math/rand/v2"

// Sample is one point drawn from the unit square.
//
// X grows to the right and Y grows downward, matching the canvas. Inside is
// derived from X and Y by the generator and never set independently.
type Sample struct {
	X      float64
	Y      float64
	Inside bool
}

// InQuarterDisc reports whether (x, y) lies in the quarter disc of radius 1
// centred on the square's bottom-left corner (0, 1) in y-down coordinates.
func InQuarterDisc(x, y float64) bool {
	dy := 1 - y
	return x*x+dy*dy <= 1
}

// Generator draws independent samples.
type Generator struct {
	float func() float64
}

// NewGenerator returns a generator backed by the shared, unseeded source.
func NewGenerator() *Generator {
	return &Generator{float: rand.Float64}
}

// NewSeededGenerator returns a generator with its own reproducible stream.
func NewSeededGenerator(seed uint64) *Generator {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Generator{float: rng.Float64}
}

// Generate draws one sample.
func (g *Generator) Generate() Sample {
	x := g.float()
	y := g.float()
	return Sample{X: x, Y: y, Inside: InQuarterDisc(x, y)}
}
