// Command multicam derives a two-speaker camera cut list from per-speaker WAV
// recordings and writes it into a Premiere Pro project's multicam track.
//
// Subcommands:
//   - run: load the project and both recordings, build the cut list, and save
//     the edited project next to the original
//   - cuts: build the cut list only and print it as a table, JSON, or YAML
//   - history: list past runs recorded in the state directory
//   - config: create, validate, or print the configuration file
package main
