package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
)

type fakeUploadService struct {
	lastFilename string
	resp         *dto.UploadResponse
	err          error
}

func (f *fakeUploadService) UploadPaper(_ context.Context, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	f.lastFilename = fileHeader.Filename
	return f.resp, f.err
}

func uploadRouter(svc *fakeUploadService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/upload", NewUploadController(svc).UploadPaper)
	return router
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadPaper_Success(t *testing.T) {
	svc := &fakeUploadService{resp: &dto.UploadResponse{
		Success:  true,
		Message:  "File uploaded successfully",
		Filename: "1700000000000-CSE1001_IntroToProgramming_CAT1_Winter2023_SlotA1.pdf",
	}}
	router := uploadRouter(svc)

	body, contentType := multipartBody(t, "file", "CSE1001_IntroToProgramming_CAT1_Winter2023_SlotA1.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CSE1001_IntroToProgramming_CAT1_Winter2023_SlotA1.pdf", svc.lastFilename)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Filename, "CSE1001")
}

func TestUploadPaper_MissingFileReturns400(t *testing.T) {
	router := uploadRouter(&fakeUploadService{})

	// Wrong form field name, so FormFile("file") fails.
	body, contentType := multipartBody(t, "document", "paper.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, dto.ErrorCodeFileMissing, resp.Errors[0].Code)
	assert.Equal(t, "file", resp.Errors[0].Field)
}

func TestUploadPaper_ServiceErrorsMapToUploadCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode dto.ErrorCode
	}{
		{"oversized", apperrors.ErrFileTooLarge, dto.ErrorCodeFileTooLarge},
		{"not a pdf", apperrors.ErrUnsupportedType, dto.ErrorCodeUnsupportedType},
		{"bad name", apperrors.ErrBadPaperName, dto.ErrorCodeBadPaperName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := uploadRouter(&fakeUploadService{err: tt.err})

			body, contentType := multipartBody(t, "file", "whatever.pdf", []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.wantCode, resp.Errors[0].Code)
		})
	}
}
