// Package history keeps a bounded prediction history per player. Predictions
// older than a year are dropped on load, at most ten per player are kept on
// save, and a storage quota failure triggers a single retry with five per
// player. Storage is delegated to a Backend selected through the factory.
package history
