package log

// Fields is a flat key/value view of an Event for field-map loggers.
type Fields map[string]any

// Fields flattens the event. Empty optional values are left out.
func (e Event) Fields() Fields {
	f := Fields{
		"op":       e.Operation.String(),
		"category": e.Category.String(),
	}
	if e.SessionID != "" {
		f["session_id"] = e.SessionID
	}
	if e.Schema != "" {
		f["schema"] = e.Schema
	}
	if e.Key != "" {
		f["key"] = e.Key
	}
	if e.Size != 0 {
		f["size"] = e.Size
	}
	if e.ExtraBytes != 0 {
		f["extra_bytes"] = e.ExtraBytes
	}
	if e.Error != nil {
		f["error_kind"] = e.Error.Kind
		f["error_msg"] = e.Error.Message
		if e.Error.Context != "" {
			f["error_context"] = e.Error.Context
		}
	}
	return f
}
