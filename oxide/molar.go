package oxide

import "fmt"

// MolarMassTable maps oxide identifiers to molar masses in g/mol.
type MolarMassTable map[string]float64

// DefaultMolarMasses holds molar masses of common glass-forming and modifier oxides.
var DefaultMolarMasses = MolarMassTable{
	"SiO2":  60.0843,
	"Al2O3": 101.9613,
	"B2O3":  69.6202,
	"Na2O":  61.9789,
	"K2O":   94.1960,
	"Li2O":  29.8814,
	"Rb2O":  186.9350,
	"Cs2O":  281.8100,
	"CaO":   56.0774,
	"MgO":   40.3044,
	"BaO":   153.3264,
	"SrO":   103.6194,
	"ZnO":   81.3794,
	"PbO":   223.1994,
	"MnO":   70.9374,
	"FeO":   71.8444,
	"CuO":   79.5454,
	"NiO":   74.6928,
	"CoO":   74.9326,
	"TiO2":  79.8658,
	"ZrO2":  123.2228,
	"SnO2":  150.7088,
	"GeO2":  104.6388,
	"CeO2":  172.1148,
	"Fe2O3": 159.6882,
	"Cr2O3": 151.9904,
	"Ga2O3": 187.4442,
	"La2O3": 325.8091,
	"Y2O3":  225.8099,
	"Gd2O3": 362.4982,
	"Bi2O3": 465.9590,
	"Sb2O3": 291.5182,
	"P2O5":  141.9445,
	"V2O5":  181.8800,
	"Nb2O5": 265.8098,
	"Ta2O5": 441.8930,
	"SO3":   80.0632,
	"WO3":   231.8382,
	"MoO3":  143.9382,
}

// Vector returns the molar masses of the oxides of s, in order.
func (t MolarMassTable) Vector(s Set) ([]float64, error) {
	out := make([]float64, s.Len())
	for i, n := range s.names {
		m, ok := t[n]
		if !ok {
			return nil, fmt.Errorf("%w: no molar mass for %q", ErrUnknownOxide, n)
		}
		if m <= 0 {
			return nil, fmt.Errorf("oxide %q: molar mass must be positive, got %g", n, m)
		}
		out[i] = m
	}
	return out, nil
}

// Merge returns a copy of t overlaid with the entries of other.
func (t MolarMassTable) Merge(other MolarMassTable) MolarMassTable {
	out := make(MolarMassTable, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
