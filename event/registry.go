package event

import "strings"

// Wire names for the inbound taxonomy
// Used by transport layers to map external identifiers onto event types

var (
	nameToType = map[string]EventType{
		"keystroke":    EventKeystroke,
		"typing_speed": EventTypingSpeedSample,
		"submission":   EventSubmission,
		"question":     EventQuestionChange,
		"click":        EventClick,
		"pointer":      EventPointerMove,
		"scroll":       EventScroll,
		"reset":        EventSessionReset,
	}

	typeToName = func() map[EventType]string {
		m := make(map[EventType]string, len(nameToType))
		for n, t := range nameToType {
			m[t] = n
		}
		return m
	}()
)

// TypeByName resolves an external event identifier, case-insensitive
// Internal events have no wire name and cannot be resolved
func TypeByName(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

// NameOf returns the wire name for an event type, empty if unnamed
func NameOf(et EventType) string {
	return typeToName[et]
}

// WireNames returns all resolvable external identifiers
func WireNames() []string {
	names := make([]string, 0, len(nameToType))
	for n := range nameToType {
		names = append(names, n)
	}
	return names
}
