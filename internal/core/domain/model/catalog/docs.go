// Package catalog holds the read-only reference data consulted by the order
// lifecycle: labour codes, service types and add-ons with their estimated
// minutes, and the delay reason taxonomy.
package catalog
