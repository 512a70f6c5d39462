// Package fonts preloads the font resources a hosted application needs.
//
// A Preloader binds one loading strategy when it is constructed, chosen by
// the shell capability:
//   - none: there is no font API, the result is always empty
//   - native: a PlatformFontBackend starts the loads and the preloader awaits
//     every pending operation together
//   - web: one Face per FontSpec is registered in the Registry and all of them
//     load concurrently from their Source
//
// Preloading is fail-open. Individual or aggregate failures are logged as a
// single warning and the caller receives whatever faces did load, possibly
// none. Begin never returns an error and its handle always settles.
package fonts
