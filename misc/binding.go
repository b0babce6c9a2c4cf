package misc

import (
	"bytes"
	"fmt"
	"io"
	"taskhub/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func BindingPathID(c *gin.Context) (types.ID, error) {
	return BindingPathParamID(c, "id")
}

func BindingPathParamID(c *gin.Context, name string) (types.ID, error) {
	value := c.Param(name)
	id, err := types.ParseID(value)
	if err != nil {
		return 0, &bizerror.ErrBadParam{Cause: fmt.Errorf("invalid %s '%s'", name, value)}
	}
	return id, nil
}

// BindJSONPayload decodes the request body into obj. A missing body yields io.EOF,
// a literal null body leaves obj untouched and reports false.
func BindJSONPayload(c *gin.Context, obj interface{}) (bool, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return false, &bizerror.ErrBadParam{Cause: err}
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false, io.EOF
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if err := binding.JSON.BindBody(trimmed, obj); err != nil {
		return false, &bizerror.ErrBadParam{Cause: err}
	}
	return true, nil
}
