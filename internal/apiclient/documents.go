package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// Upload stores data as the resume for the given candidate record and
// returns the assigned document id.
func (c *Client) Upload(ctx context.Context, recordID, fileName, mimeType string, data []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	fields := map[string]string{
		"entity_type":   "candidate",
		"entity_id":     recordID,
		"document_type": "resume",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, "/documents", body, writer.FormDataContentType())
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", fmt.Errorf("POST /documents: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("POST /documents: response carried no document id")
	}
	return out.ID, nil
}

// Delete removes a stored document. Callers decide whether a failure
// matters; the orchestrator treats it as best-effort.
func (c *Client) Delete(ctx context.Context, documentID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/documents/"+documentID, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return nil
}
