package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"candidate-onboarding/internal/onboarding"
	"candidate-onboarding/internal/profile"
)

type recordEnvelope struct {
	Data profile.Record `json:"data"`
}

// provisionResponse is the creation-call envelope: success with the new
// candidate, or an error message.
type provisionResponse struct {
	Success   bool            `json:"success"`
	Candidate *profile.Record `json:"candidate,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// LookupSelf fetches the caller's candidate record. A 404 is reported as
// onboarding.ErrRecordNotFound so the resolver can distinguish "no record
// yet" from transient failures.
func (c *Client) LookupSelf(ctx context.Context) (profile.Record, error) {
	resp, err := c.do(ctx, http.MethodGet, "/candidates/me", nil, "")
	if err != nil {
		return profile.Record{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return profile.Record{}, fmt.Errorf("GET /candidates/me: %w", onboarding.ErrRecordNotFound)
	}

	var envelope recordEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return profile.Record{}, fmt.Errorf("GET /candidates/me: %w", err)
	}
	return envelope.Data, nil
}

// Provision creates a candidate record from identity attributes.
func (c *Client) Provision(ctx context.Context, ident onboarding.Identity) (profile.Record, error) {
	payload, err := json.Marshal(map[string]string{
		"email":      ident.Email,
		"full_name":  ident.FullName,
		"avatar_url": ident.AvatarURL,
	})
	if err != nil {
		return profile.Record{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/candidates", bytes.NewReader(payload), "application/json")
	if err != nil {
		return profile.Record{}, err
	}

	var out provisionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return profile.Record{}, fmt.Errorf("POST /candidates: %w", err)
	}
	if !out.Success || out.Candidate == nil {
		msg := out.Error
		if msg == "" {
			msg = "creation reported no candidate"
		}
		return profile.Record{}, errors.New("POST /candidates: " + msg)
	}
	return *out.Candidate, nil
}

// Patch applies a sparse update to the record with the given id.
func (c *Client) Patch(ctx context.Context, recordID string, patch profile.Patch) (profile.Record, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return profile.Record{}, err
	}

	resp, err := c.do(ctx, http.MethodPatch, "/candidates/"+recordID, bytes.NewReader(payload), "application/json")
	if err != nil {
		return profile.Record{}, err
	}

	var envelope recordEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return profile.Record{}, fmt.Errorf("PATCH /candidates/%s: %w", recordID, err)
	}
	return envelope.Data, nil
}
