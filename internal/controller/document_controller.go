package controller

import (
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	documents *service.DocumentService
}

func NewDocumentController(documents *service.DocumentService) *DocumentController {
	return &DocumentController{documents: documents}
}

// List trả về tài liệu, hỗ trợ lọc ?grade= và ?type=.
func (ctl *DocumentController) List(c *gin.Context) {
	docs, err := ctl.documents.List(c.Query("grade"), c.Query("type"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"documents": docs})
}

type documentRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
	Grade       string `json:"grade"`
	DocType     string `json:"doc_type"`
}

// Add xử lý POST /api/teacher/documents: giáo viên thêm liên kết tài liệu.
func (ctl *DocumentController) Add(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Vui lòng nhập tên và đường dẫn tài liệu")
		return
	}

	doc, err := ctl.documents.Add(req.Title, req.URL, req.Description, req.Grade, req.DocType)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.SuccessMessage(c, "Đã thêm tài liệu", gin.H{"document": doc})
}
