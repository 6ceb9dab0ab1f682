// Package export writes screening results as tables: oxide columns followed
// by a fixed-order list of property columns, one row per passing composition.
//
// Property columns may carry a constant offset, e.g. -273.15 to report
// temperatures predicted in kelvin as degrees Celsius.
package export
