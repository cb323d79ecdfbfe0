// Package report renders audit datasets into the Markdown, JSON, and CI
// summary artifacts and persists them through an afero filesystem. Renderers
// are pure functions of the dataset so identical inputs always produce
// identical reports.
package report
