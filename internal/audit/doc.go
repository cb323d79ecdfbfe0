// Package audit orchestrates the dependency audit pipeline: it runs the
// scanner collaborators, merges and sorts their results into a single dataset,
// and hands the dataset to the report renderers and writer. The fail mode
// decides whether collector failures degrade to empty results or abort the run.
package audit
