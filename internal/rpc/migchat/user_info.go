package migchat

import (
	"fmt"
	"strings"
)

// String renders a user for display: "short (name)" when both are set,
// whichever one is set alone, or "<not set>" when neither is.
func (u UserInfo) String() string {
	hasName := u.Name != ""
	hasShort := u.ShortName != ""
	switch {
	case hasName && hasShort:
		return fmt.Sprintf("%s (%s)", u.ShortName, u.Name)
	case hasName:
		return u.Name
	case hasShort:
		return u.ShortName
	default:
		return "<not set>"
	}
}

// String renders a registered user the same way a UserInfo is rendered.
func (u User) String() string {
	return UserInfo{Name: u.Name, ShortName: u.ShortName}.String()
}

// ParseUserInfo parses the "short,name" / "short:name" / "short;name" forms
// the original command-line client accepts for its --user flag.
func ParseUserInfo(s string) (UserInfo, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ':' || r == ';'
	})
	if len(parts) != 2 {
		return UserInfo{}, fmt.Errorf("migchat: cannot parse user info %q, expected \"short,name\"", s)
	}
	return UserInfo{ShortName: strings.TrimSpace(parts[0]), Name: strings.TrimSpace(parts[1])}, nil
}
