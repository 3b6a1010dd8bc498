// Package display renders notification popups as GTK4 layer-shell
// surfaces. Each popup owns a DrawingArea painted with cairo and Pango
// through the layout engine; the manager stacks popups in a screen
// corner and drives their animation from a single frame tick.
package display
