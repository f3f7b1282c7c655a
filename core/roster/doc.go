// Package roster loads player rosters (CSV scoring tables or JSON with season
// history), buckets players into scoring tiers and searches them.
package roster
