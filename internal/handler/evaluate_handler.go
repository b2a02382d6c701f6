package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veridoc/veridoc/internal/extract"
	"github.com/veridoc/veridoc/internal/pkg/errcode"
	"github.com/veridoc/veridoc/internal/pkg/response"
	"github.com/veridoc/veridoc/internal/service"
)

type EvaluateHandler struct {
	verify *service.VerifyService
}

func NewEvaluateHandler(verify *service.VerifyService) *EvaluateHandler {
	return &EvaluateHandler{verify: verify}
}

type evaluateRequest struct {
	Text string `json:"text"`
}

// Evaluate runs a submission through the full pipeline and returns the
// match evidence plus the verdict. The submission is never stored.
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	report, err := h.verify.Evaluate(c.Request.Context(), text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

func (h *EvaluateHandler) bindText(c *gin.Context) (string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "file field required")
			return "", false
		}
		f, err := header.Open()
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "cannot open upload")
			return "", false
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			response.Error(c, errcode.ErrUploadFailed, "cannot read upload")
			return "", false
		}
		text, err := extract.Text(header.Filename, raw)
		if err != nil {
			response.Error(c, errcode.ErrInvalidFile, err.Error())
			return "", false
		}
		return text, true
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return "", false
	}
	return req.Text, true
}
