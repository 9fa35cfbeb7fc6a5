package stdlib

import (
	"bufio"
	"io"

	"github.com/vv4t/cirno/cirno"
	"github.com/vv4t/cirno/scope"
	"github.com/vv4t/cirno/types"
	"github.com/vv4t/cirno/value"
)

// IO installs getch, input and clear in rt's global scope, reading
// from in (typically os.Stdin for a CLI host, or a fixture Reader in
// tests), grounded on the source's getch.c/input.c native bindings.
// clear is bound as a no-op: an embedding host that actually owns a
// terminal or screen can rebind it afterward with its own Bind call.
func IO(rt *cirno.Runtime, in io.Reader) {
	r := bufio.NewReader(in)

	rt.Bind("getch", nil, types.StringType, func(args *scope.Scope, ret *value.Value) bool {
		c, _, err := r.ReadRune()
		if err != nil {
			*ret = rt.Str("")
			return true
		}
		*ret = rt.Str(string(c))
		return true
	})

	rt.Bind("input", nil, types.StringType, func(args *scope.Scope, ret *value.Value) bool {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			*ret = rt.Str("")
			return true
		}
		line = trimNewline(line)
		*ret = rt.Str(line)
		return true
	})

	rt.Bind("clear", nil, types.NoneType, func(args *scope.Scope, ret *value.Value) bool {
		*ret = value.Value{Type: types.NoneType}
		return true
	})
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
	}
	if n > 0 && s[n-1] == '\r' {
		n--
	}
	return s[:n]
}
