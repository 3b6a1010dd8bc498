// Package dbus implements the org.freedesktop.Notifications D-Bus
// interface: a server receiving Notify and CloseNotification calls from
// applications, plus the NotificationClosed and ActionInvoked signals
// back to them, per the freedesktop.org notification specification.
package dbus
