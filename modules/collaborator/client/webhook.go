package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yamada-labo/prospectline/modules/collaborator/model"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
	"go.uber.org/zap"
)

const defaultWebhookTimeout = 300 * time.Second

// WebhookClient talks to a single external automation endpoint that both
// answers "what domains do you already have" and accepts finished batches
// for storage, keyed by an action field in the request body.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

// NewWebhookClient builds a client against a single collaborator webhook
// URL. A zero timeout falls back to defaultWebhookTimeout.
func NewWebhookClient(webhookURL string, timeout time.Duration, log *zap.Logger) *WebhookClient {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &WebhookClient{
		url:        webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type domainsRequest struct {
	Action string `json:"action"`
}

type domainsResponse struct {
	Domains []string `json:"domains"`
}

// GetExistingDomains fetches the caller's current domain set. Any failure,
// transport or decode, is logged and reported as an empty set rather than
// propagated, matching the port's documented contract.
func (c *WebhookClient) GetExistingDomains(ctx context.Context) (map[string]struct{}, error) {
	body, err := json.Marshal(domainsRequest{Action: "get_domains"})
	if err != nil {
		return map[string]struct{}{}, nil
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		if c.log != nil {
			c.log.Warn("existing domain lookup failed, proceeding with empty set", zap.Error(err))
		}
		return map[string]struct{}{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if c.log != nil {
			c.log.Warn("existing domain lookup returned non-200", zap.Int("status", resp.StatusCode))
		}
		return map[string]struct{}{}, nil
	}

	var decoded domainsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if c.log != nil {
			c.log.Warn("existing domain lookup returned unparseable body", zap.Error(err))
		}
		return map[string]struct{}{}, nil
	}

	domains := make(map[string]struct{}, len(decoded.Domains))
	for _, d := range decoded.Domains {
		domains[d] = struct{}{}
	}
	return domains, nil
}

type companyPayload struct {
	CompanyName string `json:"company_name"`
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	ContactURL  string `json:"contact_url,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type saveRequest struct {
	Action        string           `json:"action"`
	SearchKeyword string           `json:"search_keyword"`
	Companies     []companyPayload `json:"companies"`
}

type saveResponse struct {
	SpreadsheetURL string `json:"spreadsheet_url"`
}

// Save hands a finished batch over for durable storage. Unlike domain
// lookup, a save failure is returned to the caller: the round controller
// still completes the job and hands the records to the progress reporter,
// with an empty spreadsheet URL.
func (c *WebhookClient) Save(ctx context.Context, records []*scrapermodel.EnrichedRecord, keyword string) (*model.SaveResult, error) {
	companies := make([]companyPayload, 0, len(records))
	for _, r := range records {
		companies = append(companies, companyPayload{
			CompanyName: r.CompanyName,
			URL:         r.URL,
			Domain:      r.Domain,
			ContactURL:  r.ContactURL,
			Phone:       r.Phone,
		})
	}

	body, err := json.Marshal(saveRequest{
		Action:        "save_results",
		SearchKeyword: keyword,
		Companies:     companies,
	})
	if err != nil {
		return nil, fmt.Errorf("encode save request: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("save results: status %d: %s", resp.StatusCode, string(payload))
	}

	var decoded saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode save response: %w", err)
	}

	return &model.SaveResult{SpreadsheetURL: decoded.SpreadsheetURL}, nil
}

func (c *WebhookClient) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
