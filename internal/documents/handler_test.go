package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"candidate-onboarding/internal/candidates"
)

func newTestRouter(t *testing.T, userID string) (*gin.Engine, *Service, candidates.Candidate) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, candidate := newTestService(t)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc, candidate
}

func multipartUpload(t *testing.T, entityType, entityID, documentType, fileName, contentType string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}

	for field, value := range map[string]string{
		"entity_type":   entityType,
		"entity_id":     entityID,
		"document_type": documentType,
	} {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("write field %s: %v", field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadHandlerCreatesDocument(t *testing.T) {
	router, svc, candidate := newTestRouter(t, "google:1")

	body, contentType := multipartUpload(t, EntityCandidate, candidate.ID, TypeResume, "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	docID, _ := payload["id"].(string)
	if docID == "" {
		t.Fatalf("expected document id in response: %v", payload)
	}

	linked, err := svc.Candidates.GetByID(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if linked.ResumeDocumentID != docID {
		t.Fatalf("expected resume linked to %q, got %q", docID, linked.ResumeDocumentID)
	}
}

func TestUploadHandlerRejectsUnsupportedMime(t *testing.T) {
	router, _, candidate := newTestRouter(t, "google:1")

	body, contentType := multipartUpload(t, EntityCandidate, candidate.ID, TypeResume, "resume.zip", "application/zip", []byte("PK"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadHandlerRejectsWrongEntityType(t *testing.T) {
	router, _, candidate := newTestRouter(t, "google:1")

	body, contentType := multipartUpload(t, "company", candidate.ID, TypeResume, "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadHandlerRejectsMissingFile(t *testing.T) {
	router, _, candidate := newTestRouter(t, "google:1")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("entity_type", EntityCandidate)
	_ = w.WriteField("entity_id", candidate.ID)
	_ = w.WriteField("document_type", TypeResume)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDeleteHandlerRemovesDocument(t *testing.T) {
	router, svc, candidate := newTestRouter(t, "google:1")

	doc, err := svc.Upload(context.Background(), "google:1", candidate.ID, "resume.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+doc.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if _, err := svc.Repo.GetByID(context.Background(), doc.ID); err == nil {
		t.Fatalf("expected document soft-deleted")
	}
}

func TestDeleteHandlerUnknownDocument(t *testing.T) {
	router, _, _ := newTestRouter(t, "google:1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/no-such-doc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
