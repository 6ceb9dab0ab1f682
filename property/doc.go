// Package property turns surrogate predictions into physical property values.
//
// An Evaluator wraps one pretrained model with the label normalization of the
// dataset it was trained on and, for derived properties, the transform that
// built its training labels. Evaluate runs the model once on the whole batch,
// denormalizes the outputs and applies the inverse transform.
//
// Models trained on one oxide fewer than the batch are supported through an
// explicit exclusion: the evaluator drops that oxide's column before
// inference. Any other width mismatch is a configuration error.
//
// A Registry maps property names to their Spec and resolves every artifact
// once at startup.
package property
