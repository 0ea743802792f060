package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/requestdata"
	"github.com/aethermind/rag-backend/internal/services"
)

// Uploads are capped well below anything the chunker would struggle with.
const maxUploadBytes = 10 << 20

type DocumentHandler struct {
	ingestionService services.IngestionService
	documentService  services.DocumentService
}

func NewDocumentHandler(ingestionService services.IngestionService, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		ingestionService: ingestionService,
		documentService:  documentService,
	}
}

func callerID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apperrors.Unauthorized("authentication required")
	}
	return rd.UserID, nil
}

func (dh *DocumentHandler) Upload(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, apperrors.Validation("file field is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, apperrors.Validation("file exceeds the 10MB upload limit"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to open upload", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		RespondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to read upload", err))
		return
	}
	if len(data) > maxUploadBytes {
		RespondError(c, apperrors.Validation("file exceeds the 10MB upload limit"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	res, err := dh.ingestionService.IngestDocument(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"document_id":  res.DocumentID,
		"chunks_count": res.ChunksCount,
	})
}

func (dh *DocumentHandler) List(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	docs, err := dh.documentService.ListDocuments(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"documents": docs})
}

func (dh *DocumentHandler) Delete(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apperrors.Validation("invalid document id"))
		return
	}
	if err := dh.documentService.DeleteDocument(c.Request.Context(), userID, docID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document deleted"})
}
