package analysis

// Mode selects whether executable structure annotations are derived or
// the file is treated as an undifferentiated byte stream.
type Mode string

const (
	Binary Mode = "binary"
	Blob   Mode = "blob"
)

func AllModes() []Mode {
	return []Mode{Binary, Blob}
}

func ModeFromString(s string) (Mode, bool) {
	switch Mode(s) {
	case Binary:
		return Binary, true
	case Blob:
		return Blob, true
	default:
		return "", false
	}
}
