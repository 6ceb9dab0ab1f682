// Package screen filters a composition batch by target windows on predicted
// properties.
//
// Every enabled window selects the rows whose value lies in its inclusive
// [Min, Max] range. The selections are kept as roaring bitmaps and combined
// with AND; disabled windows are skipped entirely, so disabling a window can
// only grow the result. An empty result is valid.
package screen
