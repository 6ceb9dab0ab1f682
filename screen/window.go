package screen

import (
	"fmt"
	"math"
)

// Window is an inclusive range on one property.
type Window struct {
	Property string  `json:"property" mapstructure:"property"`
	Min      float64 `json:"min" mapstructure:"min"`
	Max      float64 `json:"max" mapstructure:"max"`
	Enabled  bool    `json:"enabled" mapstructure:"enabled"`
}

// Validate checks that the window names a property and has Min <= Max.
func (w Window) Validate() error {
	if w.Property == "" {
		return fmt.Errorf("screen: window without property")
	}
	if math.IsNaN(w.Min) || math.IsNaN(w.Max) {
		return fmt.Errorf("screen: window %s has a NaN bound", w.Property)
	}
	if w.Min > w.Max {
		return fmt.Errorf("screen: window %s: min %g > max %g", w.Property, w.Min, w.Max)
	}
	return nil
}

// Contains reports whether v lies in [Min, Max]. NaN is never contained.
func (w Window) Contains(v float64) bool {
	return v >= w.Min && v <= w.Max
}

func (w Window) String() string {
	state := "on"
	if !w.Enabled {
		state = "off"
	}
	return fmt.Sprintf("%s in [%g, %g] (%s)", w.Property, w.Min, w.Max, state)
}
