// Package authprovider integrates with the external user/auth collaborator.
// The core only needs it to provision the admin user of a freshly created
// agency; identity and session handling stay inside the collaborator.
package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// provisionRequest is the collaborator's user-creation payload.
type provisionRequest struct {
	AgencyID   string `json:"agency_id"`
	AgencyName string `json:"agency_name"`
	Role       string `json:"role"`
}

// HTTPProvisioner provisions agency admin users over the collaborator's REST
// API.
type HTTPProvisioner struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvisioner creates a provisioner for the collaborator at baseURL.
func NewHTTPProvisioner(baseURL string, timeout time.Duration) *HTTPProvisioner {
	return &HTTPProvisioner{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ProvisionAgencyAdmin creates the AGENCY_ADMIN user for a new agency.
// Server-side failures come back as transient errors so callers may retry
// provisioning without re-creating the agency.
func (p *HTTPProvisioner) ProvisionAgencyAdmin(
	ctx context.Context,
	agencyID kernel.UUID,
	agencyName string,
) error {
	payload, err := json.Marshal(provisionRequest{
		AgencyID:   agencyID.String(),
		AgencyName: agencyName,
		Role:       "AGENCY_ADMIN",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.baseURL+"/internal/users", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return errs.NewTransientStoreError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return errs.NewConflictError(
			fmt.Sprintf("admin user for agency %s already exists", agencyID))
	case resp.StatusCode >= 500:
		return errs.NewTransientStoreError(
			fmt.Errorf("auth provider responded with status %d", resp.StatusCode))
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"provisioning request",
			fmt.Errorf("auth provider rejected the request with status %d", resp.StatusCode))
	}
}
