package termi

// Filter selects the events an EventLoop waits for
type Filter interface {
	Match(Event) bool
}

// FilterFunc adapts a function to a Filter
type FilterFunc func(Event) bool

func (fn FilterFunc) Match(ev Event) bool {
	return fn(ev)
}

// primaryDeviceAttributesFilter matches the DA1 reply
type primaryDeviceAttributesFilter struct{}

func (primaryDeviceAttributesFilter) Match(ev Event) bool {
	_, ok := ev.(PrimaryDeviceAttributes)
	return ok
}

// keyboardEnhancementFilter matches the flags reply or the DA1 reply sent
// after it
type keyboardEnhancementFilter struct{}

func (keyboardEnhancementFilter) Match(ev Event) bool {
	switch ev.(type) {
	case KeyboardEnhancementFlags, PrimaryDeviceAttributes:
		return true
	}
	return false
}

// desktopNotificationFilter matches the notification support reply carrying
// identifier, or the DA1 reply
type desktopNotificationFilter struct {
	identifier string
}

func (f desktopNotificationFilter) Match(ev Event) bool {
	switch ev := ev.(type) {
	case DesktopNotificationSupport:
		return ev.Identifier == f.identifier
	case PrimaryDeviceAttributes:
		return true
	}
	return false
}
