package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veridoc/veridoc/internal/extract"
	"github.com/veridoc/veridoc/internal/pkg/errcode"
	"github.com/veridoc/veridoc/internal/pkg/response"
	"github.com/veridoc/veridoc/internal/service"
)

type DocumentHandler struct {
	verify *service.VerifyService
}

func NewDocumentHandler(verify *service.VerifyService) *DocumentHandler {
	return &DocumentHandler{verify: verify}
}

type ingestRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Text     string `json:"text"`
}

// Ingest accepts either a multipart upload (field "file") or a JSON body
// with raw text. Uploaded files are converted to plain text before they
// enter the pipeline.
func (h *DocumentHandler) Ingest(c *gin.Context) {
	in, ok := h.bindIngest(c)
	if !ok {
		return
	}
	result, err := h.verify.Ingest(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *DocumentHandler) bindIngest(c *gin.Context) (service.IngestInput, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "file field required")
			return service.IngestInput{}, false
		}
		f, err := header.Open()
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "cannot open upload")
			return service.IngestInput{}, false
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			response.Error(c, errcode.ErrUploadFailed, "cannot read upload")
			return service.IngestInput{}, false
		}
		text, err := extract.Text(header.Filename, raw)
		if err != nil {
			response.Error(c, errcode.ErrInvalidFile, err.Error())
			return service.IngestInput{}, false
		}
		return service.IngestInput{
			Filename: header.Filename,
			Source:   c.PostForm("source"),
			Text:     text,
		}, true
	}

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return service.IngestInput{}, false
	}
	if req.Text == "" {
		response.Error(c, errcode.ErrInvalid, "text required")
		return service.IngestInput{}, false
	}
	return service.IngestInput{
		Filename: req.Filename,
		Source:   req.Source,
		Text:     req.Text,
	}, true
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit := uint(50)
	offset := uint(0)
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = uint(parsed)
		}
	}
	if value := c.Query("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			offset = uint(parsed)
		}
	}
	docs, err := h.verify.ListDocuments(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"documents": docs})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.verify.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.verify.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
