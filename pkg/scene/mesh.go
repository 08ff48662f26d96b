package scene

// Morph names a single morph channel and its current weight.
type Morph struct {
	Name   string
	Weight float64
}

// Mesh is a list of primitives sharing a morph-weight set.
type Mesh struct {
	Name       string
	Primitives []*Primitive
	Morphs     []Morph
}

// MorphWeights returns the current weight list in target order.
func (m *Mesh) MorphWeights() []float64 {
	w := make([]float64, len(m.Morphs))
	for i, mo := range m.Morphs {
		w[i] = mo.Weight
	}
	return w
}
