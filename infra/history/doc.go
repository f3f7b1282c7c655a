// Package history provides persistent prediction history backends backed by
// a JSON file, SQLite or Redis. Importing it registers the "jsonfile",
// "sqlite" and "redis" backend types.
package history
