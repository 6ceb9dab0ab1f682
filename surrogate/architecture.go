package surrogate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Architecture describes the shape of a dense network: an input width,
// hidden layer widths, the hidden activation and the output activation.
// The output layer always has a single unit.
type Architecture struct {
	Inputs     int        `json:"inputs" mapstructure:"inputs"`
	Hidden     []int      `json:"hidden" mapstructure:"hidden"`
	Activation Activation `json:"activation" mapstructure:"activation"`
	Output     Activation `json:"output" mapstructure:"output"`
}

// Name returns the hidden layer widths joined by "x", e.g. "20x20x20".
func (a Architecture) Name() string {
	parts := make([]string, len(a.Hidden))
	for i, h := range a.Hidden {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, "x")
}

// Validate checks widths and activations.
func (a Architecture) Validate() error {
	if a.Inputs <= 0 {
		return fmt.Errorf("surrogate: architecture needs a positive input width, got %d", a.Inputs)
	}
	for i, h := range a.Hidden {
		if h <= 0 {
			return fmt.Errorf("surrogate: hidden layer %d has width %d", i, h)
		}
	}
	if err := a.hidden().Validate(); err != nil {
		return err
	}
	return a.output().Validate()
}

// Compatible reports whether b describes the same network shape as a.
// Empty activations on either side are treated as defaults.
func (a Architecture) Compatible(b Architecture) bool {
	return a.Inputs == b.Inputs && a.Matches(b)
}

// IsZero reports whether a declares nothing about the network shape.
func (a Architecture) IsZero() bool {
	return a.Inputs == 0 && len(a.Hidden) == 0 && a.Activation == "" && a.Output == ""
}

// Matches reports whether the loaded architecture b satisfies the declared
// architecture a. Hidden widths and activations must agree; a zero Inputs
// accepts any input width.
func (a Architecture) Matches(b Architecture) bool {
	if a.Inputs != 0 && a.Inputs != b.Inputs {
		return false
	}
	return slices.Equal(a.Hidden, b.Hidden) && a.hidden() == b.hidden() && a.output() == b.output()
}

func (a Architecture) hidden() Activation {
	if a.Activation == "" {
		return GELU
	}
	return a.Activation
}

func (a Architecture) output() Activation {
	if a.Output == "" {
		return Linear
	}
	return a.Output
}

// widths returns the unit count of every layer boundary, input first.
func (a Architecture) widths() []int {
	w := make([]int, 0, len(a.Hidden)+2)
	w = append(w, a.Inputs)
	w = append(w, a.Hidden...)
	return append(w, 1)
}
