// Package scanners converts the JSON emitted by pip-audit, safety,
// pip-licenses, and pip into typed audit records. Every scanner tolerates empty
// output and surfaces malformed output as a parse error so the caller can
// decide between degrading and aborting.
package scanners
