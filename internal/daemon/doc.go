// Package daemon wires the notification daemon together: the D-Bus
// server, the popup display manager, the audio manager and config hot
// reload.
package daemon
