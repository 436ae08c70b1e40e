// Package pipeline composes activity detection, frame sanitizing, complement
// synthesis, interjection splicing, dilution, and the multicam write into one
// explicit run.
//
// Run executes the stages in a fixed order, checks the coverage invariant
// between stages, and stops before touching the project on any failure. Each
// stage is logged with the run ID and stage name from context so that log
// lines and history rows can be correlated.
package pipeline
