// Package conv provides checked integer conversions.
//
// Row counts and row indices are plain ints in the pipeline but uint32 inside
// bitmaps; these helpers guard the boundary between the two.
package conv
