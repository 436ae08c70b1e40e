// Package project loads, edits, and saves Premiere Pro project documents.
//
// A .prproj file is gzip-compressed XML. Documents are parsed with
// github.com/beevik/etree and expose the multicam.Container interface so the
// cut-list writer never touches the XML tree directly. Plain uncompressed XML
// is accepted as well and saved back in the form it was read.
//
// Object references follow Premiere's convention: shared objects carry an
// ObjectID attribute and are referenced elsewhere through ObjectRef. New
// track items receive the next free numeric ObjectID.
package project
