// Package headless implements the shell's platform collaborators without a
// display. The host binary runs on it and tests use it as a reference
// platform: a render surface that records clear colors, a scene container,
// a native font backend, a native media player and a web media pipeline.
package headless
