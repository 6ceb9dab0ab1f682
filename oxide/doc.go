// Package oxide defines oxide identifiers, ordered oxide sets and the molar
// mass table used to convert compositions to molar quantities.
//
// Every composition in glassgen is expressed over a global Set. Datasets and
// surrogate models may be defined over a subset of it; Align maps such a
// subset onto the global order and rejects subsets whose relative order
// disagrees with the global one.
package oxide
