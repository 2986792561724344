package trigger

import "fmt"

// Type represents the reason a script is being executed.
type Type byte

// Supported trigger types.
const (
	// Verification indicates that the script is checking the validity of
	// a message, it's expected to return a single boolean value and should
	// not change the storage.
	Verification Type = 0x00

	// Application indicates that the script is being invoked as an
	// application function which can change the storage and return any
	// values.
	Application Type = 0x10
)

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case Verification:
		return "Verification"
	case Application:
		return "Application"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

// FromString converts string to trigger Type.
func FromString(str string) (Type, error) {
	for _, t := range []Type{Verification, Application} {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trigger type: %s", str)
}
