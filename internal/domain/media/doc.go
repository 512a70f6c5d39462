// Package media provides the media player facade the shell drives.
//
// The implementation is chosen once, by capability, through Resolve. All
// implementations share the Player contract so the focus bridge never needs
// to know which one it talks to.
package media
