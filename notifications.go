package termi

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// QueryDesktopNotifications asks the terminal if it supports kitty desktop
// notifications (OSC 99). ok is false when the terminal answered without
// supporting them. ErrTimeout means the terminal didn't answer at all.
//
// See https://sw.kovidgoyal.net/kitty/desktop-notifications/#querying-for-support
func QueryDesktopNotifications(opts Options) (support DesktopNotificationSupport, ok bool, err error) {
	id, err := newIdentifier()
	if err != nil {
		return support, false, fmt.Errorf("query desktop notifications: %w", err)
	}
	ev, err := query(opts, desktopNotificationQuery(id), desktopNotificationFilter{identifier: id})
	if err != nil {
		return support, false, fmt.Errorf("query desktop notifications: %w", err)
	}
	support, ok = ev.(DesktopNotificationSupport)
	return support, ok, nil
}

// newIdentifier returns a random identifier to correlate a query with its
// reply: a version 4 UUID in its simple form, without dashes
func newIdentifier() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(u[:]), nil
}
