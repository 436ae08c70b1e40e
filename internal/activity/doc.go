// Package activity converts a speaker's waveform into detected activity frames.
//
// The signal is cut into fixed windows aligned to the project's video frame
// grid; a window is active when its amplitude envelope exceeds the speaker's
// sensitivity. Runs of active windows become one timeline.Frame each, so frame
// bounds always land on whole video frames.
package activity
