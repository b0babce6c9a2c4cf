package common

import "bytes"

func StringReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
