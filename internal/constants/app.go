package constants

const (
	AppName    = "payops"
	EnvPrefix  = "PAYOPS"
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04"
)

// Command annotations read by the root command's guard.
const (
	AnnotationAuth = "auth"
	AuthRequired   = "required"
	AuthGuestOnly  = "guest"
)
