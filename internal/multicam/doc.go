// Package multicam renders a finished cut list into a project's multicam
// track.
//
// The project representation stays behind the Container and Track interfaces.
// Write checks every frame and the target track before the first mutation, so
// a rejected cut list leaves the document untouched.
package multicam
