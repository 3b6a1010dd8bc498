// Package render implements the popup layout engine: a tree of anchored
// blocks whose geometry is predicted once per notification, then drawn and
// animated frame by frame. Text measurement, painting and windowing are
// consumed through interfaces so the engine itself stays platform-free.
package render
