// Package execshell wraps invocation of the external dependency scanners
// (pip-audit, safety, pip-licenses, pip) behind typed commands, capturing
// stdout, stderr, and exit codes while logging lifecycle events and notifying
// registered observers.
package execshell
