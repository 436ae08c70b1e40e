// Package timeline holds the frame model and the interval algebra that turns
// per-speaker activity into a gap-free multicam cut list.
//
// A Frame is a half-open interval [InPoint, OutPoint) in Premiere ticks tagged
// with the camera track it activates. Every operation here is pure: it takes
// a frame slice and returns a new slice without touching the input.
//
// Pipeline order:
//   - RemoveNoise and MergeThroughSilence sanitize detected activity.
//   - Complement synthesizes the other speaker across the primary's gaps.
//   - Seed and Splice build the covering timeline and interleave short
//     interjections from the secondary speaker.
//   - Dilute / DiluteN absorb flicker-length cuts into their neighbours.
//
// CheckCoverage and CheckNonOverlap verify the invariants each stage promises.
package timeline
