package termi

import "fmt"

const (
	// kitty keyboard protocol
	kittyKBQuery = "\x1b[?u"

	// Primary Device Attributes
	primaryAttributes = "\x1b[0c"

	// kitty desktop notifications support query. Identifiers may only use
	// [a-zA-Z0-9_\-+.]
	notificationSupportQuery = "\x1b]99;i=%s:p=?;\x1b\\"
)

func desktopNotificationQuery(identifier string) string {
	return fmt.Sprintf(notificationSupportQuery, identifier)
}
