// Package client talks to the Paystack transaction API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
)

const requestTimeout = 10 * time.Second

// VerifyResponse is the subset of Paystack's transaction verification payload
// the checkout flow acts on. Amount is in kobo, as the processor records it.
type VerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Customer struct {
			Email string `json:"email"`
			Phone string `json:"phone"`
		} `json:"customer"`
	} `json:"data"`
}

// Paystack is the HTTP client for Paystack's transaction endpoints.
type Paystack struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
}

func NewPaystack(cfg config.PaystackConfig) *Paystack {
	return &Paystack{
		httpClient: &http.Client{Timeout: requestTimeout},
		secretKey:  cfg.GetPaystackSecretKey(),
		baseURL:    cfg.GetPaystackBaseURL(),
	}
}

// VerifyTransaction fetches the processor's record of a transaction by
// reference. Any transport, status, or decoding failure comes back as an
// upstream error: the caller must treat it as "not verified", never as a
// rejection with a known cause.
func (p *Paystack) VerifyTransaction(ctx context.Context, reference string) (*VerifyResponse, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "payment processor request failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "payment processor unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "payment processor response unreadable", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(fmt.Sprintf("payment processor returned status %d", resp.StatusCode))
	}

	var out VerifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "payment processor response malformed", err)
	}
	if !out.Status {
		return nil, apperr.Upstream("payment processor could not resolve reference")
	}

	return &out, nil
}
