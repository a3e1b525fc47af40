package termi

import (
	"strings"
	"unicode/utf8"

	"git.sr.ht/~rockorager/termi/ansi"
	"git.sr.ht/~rockorager/termi/log"
)

// decoder turns terminal input into Events. Anything which isn't a reply to
// one of our queries, including malformed replies, is dropped
type decoder struct {
	parser *ansi.Parser
	events *queue[Event]
}

func newDecoder() *decoder {
	return &decoder{
		parser: ansi.NewParser(),
		events: newQueue[Event](),
	}
}

// advance feeds buf to the decoder. buf may end in the middle of a sequence
func (d *decoder) advance(buf []byte) {
	d.parser.Advance(buf)
	for {
		seq, ok := d.parser.Next()
		if !ok {
			return
		}
		d.handleSequence(seq)
	}
}

// next returns the oldest decoded event
func (d *decoder) next() (Event, bool) {
	return d.events.pop()
}

func (d *decoder) pending() bool {
	return d.events.len() > 0
}

func (d *decoder) handleSequence(seq ansi.Sequence) {
	switch seq := seq.(type) {
	case ansi.CSI:
		log.Trace("[stdin] CSI %q %v %q", string(seq.Intermediate), seq.Parameters, seq.Final)
		if len(seq.Intermediate) != 1 || seq.Intermediate[0] != '?' {
			return
		}
		switch seq.Final {
		case 'c':
			d.primaryDeviceAttributes(seq.Parameters)
		case 'u':
			switch len(seq.Parameters) {
			case 0:
				d.keyboardEnhancementFlags(-1)
			case 1:
				if len(seq.Parameters[0]) != 1 {
					return
				}
				d.keyboardEnhancementFlags(seq.Parameters[0][0])
			}
		}
	case ansi.OSC:
		log.Trace("[stdin] OSC %q", seq.Payload)
		fields := strings.Split(string(seq.Payload), ";")
		if len(fields) != 3 || fields[0] != "99" {
			return
		}
		d.desktopNotificationSupport(fields[1], fields[2])
	}
}

func (d *decoder) primaryDeviceAttributes(params [][]int) {
	attrs := make([]int, 0, len(params))
	for _, ps := range params {
		if ps[0] < 0 {
			continue
		}
		attrs = append(attrs, ps[0])
	}
	d.events.push(PrimaryDeviceAttributes{Attributes: attrs})
}

// keyboardEnhancementFlags queues the flags reply. A negative value means the
// parameter was absent and the reply is dropped
func (d *decoder) keyboardEnhancementFlags(bits int) {
	if bits < 0 {
		return
	}
	d.events.push(truncateKeyboardEnhancementFlags(bits))
}

// desktopNotificationSupport queues the reply to a support query, which
// echoes the query's metadata "i=<identifier>:p=?" in its first field
func (d *decoder) desktopNotificationSupport(metadata string, payload string) {
	id, ok := strings.CutPrefix(metadata, "i=")
	if !ok {
		return
	}
	id, ok = strings.CutSuffix(id, ":p=?")
	if !ok || !utf8.ValidString(id) {
		return
	}
	d.events.push(DesktopNotificationSupport{
		Identifier: id,
		Options:    parseNotificationOptions(payload),
	})
}

// parseNotificationOptions parses "key=value,value:key=value"
func parseNotificationOptions(payload string) map[string][]string {
	if payload == "" {
		return nil
	}
	opts := make(map[string][]string)
	for _, kv := range strings.Split(payload, ":") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if value == "" {
			opts[key] = []string{}
			continue
		}
		opts[key] = strings.Split(value, ",")
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}
