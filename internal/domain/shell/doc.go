// Package shell implements the application lifecycle state machine.
//
// A Shell hosts at most one application at a time and moves through three
// states:
//
//	Idle --Start--> Loading --Loaded--> Started
//	  ^                |                   |
//	  +------Stop------+-------Stop--------+
//
// Start builds a descriptor and begins preloading the application's fonts
// plus the shell baseline. Whatever the preload outcome, the Loaded trigger
// moves the shell to Started, where the application is mounted in the
// container and receives focus. Stop unmounts and resets. Any other trigger
// is ignored.
//
// Font loading completes on its own goroutine and re-enters the machine with
// the generation it was started for. A completion whose generation is no
// longer current, because the shell was stopped or restarted, is discarded.
package shell
