package ansicolor

const (
	Reset = "[0m"
	Bold  = "[1m"

	Black   = "[30m"
	Red     = "[31m"
	Green   = "[32m"
	Yellow  = "[33m"
	Blue    = "[34m"
	Magenta = "[35m"
	Cyan    = "[36m"
	White   = "[37m"
	Gray    = "[90m"

	BgBlack   = "[40m"
	BgRed     = "[41m"
	BgGreen   = "[42m"
	BgYellow  = "[43m"
	BgBlue    = "[44m"
	BgMagenta = "[45m"
	BgCyan    = "[46m"
	BgWhite   = "[47m"
)
