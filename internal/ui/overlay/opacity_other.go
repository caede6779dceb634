//go:build !windows

package overlay

// applyNativeOpacity is a no-op outside Windows; the background rectangle
// carries the alpha there.
func (overlay *Window) applyNativeOpacity(uint8) {}
