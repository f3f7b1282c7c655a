// Package players exposes the roster, tiers, predictions and prediction
// history over HTTP.
package players
