package sanitizer

import "github.com/lumenpulse/apikit/pkg/payload"

// Deep rewrites every string leaf of v with transform, recursing into lists and
// objects. A nil transform defaults to SanitizeString.
func Deep(v payload.Value, transform Transform) payload.Value {
	if transform == nil {
		transform = SanitizeString
	}
	return deep(v, transform)
}

func deep(v payload.Value, transform Transform) payload.Value {
	switch v.Kind() {
	case payload.KindString:
		s, _ := v.Str()
		return payload.String(transform(s))
	case payload.KindList:
		items := v.Items()
		for i, item := range items {
			items[i] = deep(item, transform)
		}
		return payload.List(items...)
	case payload.KindObject:
		members := v.Members()
		for i, m := range members {
			members[i].Value = deep(m.Value, transform)
		}
		return payload.Object(members...)
	default:
		return v
	}
}

// StringsOnly sanitizes scalar string leaves and passes everything else through.
// It checks each member's kind before descending so it can run on payloads whose
// types have not been coerced yet. A nil transform defaults to SanitizeString.
func StringsOnly(v payload.Value, transform Transform) payload.Value {
	if transform == nil {
		transform = SanitizeString
	}
	return stringsOnly(v, transform)
}

func stringsOnly(v payload.Value, transform Transform) payload.Value {
	switch v.Kind() {
	case payload.KindString:
		s, _ := v.Str()
		return payload.String(transform(s))
	case payload.KindList:
		items := v.Items()
		for i, item := range items {
			items[i] = stringsOnly(item, transform)
		}
		return payload.List(items...)
	case payload.KindObject:
		members := v.Members()
		for i, m := range members {
			switch m.Value.Kind() {
			case payload.KindString:
				s, _ := m.Value.Str()
				members[i].Value = payload.String(transform(s))
			case payload.KindList, payload.KindObject:
				members[i].Value = stringsOnly(m.Value, transform)
			}
		}
		return payload.Object(members...)
	default:
		return v
	}
}
