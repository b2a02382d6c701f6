package response

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

type codeErr struct {
	code uint32
	msg  string
}

func (e codeErr) Error() string {
	return e.msg
}

func (e codeErr) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return codeErr{code: code, msg: msg}
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, 200, AsCodeErr(uint32(code), message))
}

// Unavailable signals a retryable backend failure with a real 503 so that
// clients and load balancers can tell it apart from a terminal error.
func Unavailable(c *gin.Context, code int, message string) {
	c.Header("Retry-After", "5")
	proxyutil.FailJson(c, 503, AsCodeErr(uint32(code), message))
}
