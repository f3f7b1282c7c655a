// Package prediction projects a player's points for the next season. The
// Engine combines independent multipliers (age curve, position, games played,
// consistency and recent trend) into a bounded estimate with a confidence
// score, and optionally records every projection in a prediction history.
package prediction
