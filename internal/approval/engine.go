// Package approval integrates with the external approval workflow engine.
// The engine decides approve/reject asynchronously; registration and
// cancellation are outbound best-effort calls, and the decision comes back as
// an approval.completed callback (see the webhook handler).
package approval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TargetTypeStaffLoan is the target type this service registers with the engine.
// Completion events carrying any other target type are ignored.
const TargetTypeStaffLoan = "staff_loan"

// Decision values carried by CompletedEvent
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// InitiateRequest registers an entity with the approval engine
type InitiateRequest struct {
	TargetType  string `json:"target_type"`
	TargetID    string `json:"target_id"`
	FlowCode    string `json:"flow_code"`
	InitiatorID string `json:"initiator_id"`
	IsUrgent    bool   `json:"is_urgent"`
}

// CompletedEvent is the engine's asynchronous decision callback. Delivery is
// at-least-once; handlers must tolerate duplicates.
type CompletedEvent struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Status     string `json:"status"` // approved or rejected
	ApproverID string `json:"approver_id"`
	Comment    string `json:"comment"`
}

// Engine is the outbound contract against the external workflow engine
type Engine interface {
	InitiateApproval(ctx context.Context, req InitiateRequest) (string, error)
	CancelApproval(ctx context.Context, instanceID string) error
}

type httpEngine struct {
	baseURL string
	client  *http.Client
}

// NewHTTPEngine returns an Engine backed by the engine's JSON API
func NewHTTPEngine(baseURL string) Engine {
	return &httpEngine{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *httpEngine) InitiateApproval(ctx context.Context, req InitiateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode initiate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/approvals", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build initiate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("approval engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("approval engine returned status %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode initiate response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("approval engine returned empty instance id")
	}

	return result.ID, nil
}

func (e *httpEngine) CancelApproval(ctx context.Context, instanceID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, e.baseURL+"/api/approvals/"+instanceID, nil)
	if err != nil {
		return fmt.Errorf("failed to build cancel request: %w", err)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("approval engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("approval engine returned status %d", resp.StatusCode)
	}

	return nil
}
