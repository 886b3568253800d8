// Package webhooks calls the external generation pipeline. Generation is
// asynchronous: a 2xx response only acknowledges the request, results arrive
// later as rows written by the pipeline.
package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/pkg/metrics"
)

const maxErrorBodySize = 2048

// StatusError is returned for non-2xx pipeline responses. Body carries an
// excerpt of the response for logs and API error messages.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook %s failed with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("webhook %s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Service.Pipeline.WebhookBaseUrl, "/"),
		client:  &http.Client{Timeout: cfg.Service.Pipeline.RequestTimeout},
	}
}

// BuyerGeneration starts the avatar generation run for a saved brief.
type BuyerGeneration struct {
	ProjectID    uuid.UUID `json:"project_id"`
	BriefID      uuid.UUID `json:"brief_id"`
	UserID       string    `json:"user_id"`
	BriefVersion int       `json:"brief_version"`
}

func (c *Client) GenerateBuyers(ctx context.Context, request BuyerGeneration) error {
	return c.post(ctx, "buyer-parte1", request)
}

// AdCreation asks the pipeline to script one ad.
type AdCreation struct {
	ProjectID            uuid.UUID `json:"project_id"`
	AvatarID             uuid.UUID `json:"avatar_id"`
	FunnelStage          string    `json:"funnel_stage"`
	Format               string    `json:"format"`
	ScriptType           string    `json:"script_type,omitempty"`
	Angle                string    `json:"angle"`
	AngleIdea            string    `json:"angle_idea"`
	AngleSource          *string   `json:"angle_source"`
	VideoDurationSeconds *int      `json:"video_duration_seconds,omitempty"`
	CarouselSlides       *int      `json:"carousel_slides,omitempty"`
}

func (c *Client) CreateAd(ctx context.Context, request AdCreation) error {
	return c.post(ctx, "creacion-anuncios", request)
}

// AdsAnalysis asks the pipeline to scrape and analyze competitor ad
// libraries.
type AdsAnalysis struct {
	ProjectID   uuid.UUID               `json:"project_id"`
	Competitors []AdsAnalysisCompetitor `json:"competitors"`
}

type AdsAnalysisCompetitor struct {
	Name          string `json:"name"`
	AdsLibraryURL string `json:"ads_library_url"`
}

func (c *Client) AnalyzeAds(ctx context.Context, request AdsAnalysis) error {
	return c.post(ctx, "analisisanuncios", request)
}

// DownloadReport streams the PDF dossier for one avatar. The caller owns the
// returned body and must close it.
func (c *Client) DownloadReport(ctx context.Context, projectID, avatarID uuid.UUID) (io.ReadCloser, error) {
	payload := map[string]string{
		"project_id": projectID.String(),
		"avatar_id":  avatarID.String(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("descargar-doc"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	// The report is generated on demand and can outlive the JSON call
	// timeout; cancellation comes from ctx instead.
	response, err := (&http.Client{Transport: c.client.Transport}).Do(request)
	if err != nil {
		return nil, fmt.Errorf("calling webhook descargar-doc: %w", err)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		defer response.Body.Close()
		return nil, readStatusError("descargar-doc", response)
	}
	return response.Body, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(endpoint), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		metrics.IncreasePipelineCallsMetric(endpoint, "error")
		return fmt.Errorf("calling webhook %s: %w", endpoint, err)
	}
	defer response.Body.Close()
	metrics.IncreasePipelineCallsMetric(endpoint, strconv.Itoa(response.StatusCode))

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return readStatusError(endpoint, response)
	}
	_, _ = io.Copy(io.Discard, response.Body)
	return nil
}

func (c *Client) endpoint(name string) string {
	return c.baseURL + "/" + name
}

func readStatusError(endpoint string, response *http.Response) *StatusError {
	excerpt, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
	return &StatusError{
		Endpoint:   endpoint,
		StatusCode: response.StatusCode,
		Body:       strings.TrimSpace(string(excerpt)),
	}
}
