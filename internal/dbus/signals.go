package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// EmitNotificationClosed emits the NotificationClosed signal. Clients
// use the reason to distinguish expiry from dismissal.
func (s *Server) EmitNotificationClosed(id uint32, reason CloseReason) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(Path, Interface+".NotificationClosed", id, uint32(reason)); err != nil {
		return fmt.Errorf("failed to emit NotificationClosed signal: %w", err)
	}

	s.logger.Debug("emitted NotificationClosed signal", "id", id, "reason", reason.String())
	return nil
}

// EmitActionInvoked emits the ActionInvoked signal for a user-invoked
// notification action.
func (s *Server) EmitActionInvoked(id uint32, actionKey string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(Path, Interface+".ActionInvoked", id, actionKey); err != nil {
		return fmt.Errorf("failed to emit ActionInvoked signal: %w", err)
	}

	s.logger.Debug("emitted ActionInvoked signal", "id", id, "action_key", actionKey)
	return nil
}

// CloseWithReason stops tracking a notification and emits
// NotificationClosed with the given reason.
func (s *Server) CloseWithReason(id uint32, reason CloseReason) error {
	s.MarkClosed(id)
	return s.EmitNotificationClosed(id, reason)
}

// InvokeAction emits ActionInvoked and then closes the notification as
// dismissed.
func (s *Server) InvokeAction(id uint32, actionKey string) error {
	if err := s.EmitActionInvoked(id, actionKey); err != nil {
		return err
	}
	return s.CloseWithReason(id, CloseReasonDismissed)
}

// Connection returns the underlying D-Bus connection.
func (s *Server) Connection() *dbus.Conn {
	return s.conn
}
