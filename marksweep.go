// ABOUTME: Main marksweep package providing version information and package documentation
// ABOUTME: This is the root package for the mark-and-sweep memory manager

// Package marksweep provides a minimal tracing garbage collector for a toy
// value space of integers and pairs. The collector lives in package gc;
// graph, heapdump and render offer snapshot analysis, dump files and
// printing on top of it.
package marksweep

// Version is the semantic version of the marksweep module
const Version = "0.1.0-dev"
