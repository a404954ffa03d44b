package constant

// ServerMap contains all known game servers. The value is the server's
// UTC offset in hours, used only for display purposes.
var ServerMap = map[string]int{
	"CN": 8,
	"US": -7,
	"JP": 9,
	"KR": 9,
}
