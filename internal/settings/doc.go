// Package settings models the operator-facing encoding controls.
//
// Focus is a closed set of six controls with explicit successor and
// predecessor tables. Each control addresses a plain ordered option list
// through a bounds-checked Selector. Params freezes the current cursor values
// into an immutable EncodingParameters copy that the encoder runner receives
// at launch, so later cursor edits never reach a run that is already in
// flight.
package settings
