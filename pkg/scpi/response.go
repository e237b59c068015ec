package scpi

import "strings"

// Payload extracts the value token from an instrument response.
//
// With headers enabled the instrument echoes the command path before the
// value ("CH1:COUPLING DC", ":TRIGGER:MAIN:MODE AUTO"); with headers off it
// answers the bare token ("DC"). Either way the value is the last
// space-separated token. Surrounding double quotes are stripped, since the
// measurement unit query answers a quoted string.
func Payload(response string) string {
	s := strings.TrimSpace(response)
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	return strings.Trim(s, `"`)
}
