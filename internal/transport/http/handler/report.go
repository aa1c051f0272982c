package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/pkg/pdfextract"
	"aarogya-ai/internal/transport/http/response"
)

const maxPDFSize = 10 << 20 // 10 MB

type ReportHandler struct {
	reportService *app.ReportService
}

type CreateReportRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description"`
	ReportType  string `json:"report_type" binding:"required,max=64"`
}

func NewReportHandler(reportService *app.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), app.CreateReportInput{
		OwnerEmail:  user.Email,
		Title:       req.Title,
		Description: req.Description,
		ReportType:  req.ReportType,
	})
	if err != nil {
		respondServiceError(c, err, "create report failed")
		return
	}

	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "ok",
		Data:    report,
	})
}

func (h *ReportHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.GetOwn(user.Email, id)
	if err != nil {
		respondServiceError(c, err, "get report failed")
		return
	}
	response.OK(c, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reports, err := h.reportService.ListOwn(user.Email)
	if err != nil {
		respondServiceError(c, err, "list reports failed")
		return
	}
	response.OK(c, reports)
}

// UploadPDF accepts a multipart form with "file" (PDF), "title" and
// "report_type"; the extracted text becomes the report content and is
// queued for indexing.
func (h *ReportHandler) UploadPDF(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxPDFSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	text, err := pdfextract.ExtractText(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to extract text from PDF: "+err.Error())
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "PDF contains no extractable text")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}
	reportType := strings.TrimSpace(c.PostForm("report_type"))
	if reportType == "" {
		reportType = "Document"
	}

	report, err := h.reportService.Create(c.Request.Context(), app.CreateReportInput{
		OwnerEmail:  user.Email,
		Title:       title,
		Description: strings.TrimSpace(c.PostForm("description")),
		ReportType:  reportType,
		Content:     text,
	})
	if err != nil {
		respondServiceError(c, err, "create report failed")
		return
	}

	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "ok",
		Data:    report,
	})
}
