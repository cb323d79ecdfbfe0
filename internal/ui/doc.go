// Package ui adapts scanner lifecycle events into console-friendly log output.
package ui
