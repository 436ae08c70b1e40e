// Package cutlist turns a final frame sequence into a reviewable cut list and
// encodes it as JSON or YAML for export.
package cutlist
