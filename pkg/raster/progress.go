package raster

// Progress receives coarse-grained render lifecycle milestones as a
// stage name and overall completion fraction in [0,1]: 0.1 load, 0.2
// update, 0.7 raster, 0.8 composite, 1.0 done. It replaces
// original_source/include/observer.h's static Observable/IObserver pair
// with a plain injected interface a caller implements directly, with no
// base class to inherit from.
type Progress interface {
	Report(stage string, frac float64)
}

// NopProgress discards every milestone.
type NopProgress struct{}

func (NopProgress) Report(string, float64) {}
