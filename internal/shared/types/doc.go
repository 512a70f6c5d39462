// Package types provides shared value types for the application shell.
//
// Core Types:
//   - Capability: Platform capability resolved once at shell construction
//   - Color: RGBA clear color as stored in the render surface options
//   - Rect: Video position and size in stage coordinates
//
// Example Usage:
//
//	capability, err := types.ParseCapability("native")
//	if err != nil {
//	    return err
//	}
//	pos := types.DefaultVideoPos
package types
