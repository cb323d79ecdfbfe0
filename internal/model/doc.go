// Package model defines the immutable data types shared by the collectors,
// the aggregator, and the report renderers: vulnerability findings, dependency
// records, collector step statuses, and the per-run audit dataset.
package model
