// Package ark talks to the Volcano Ark text-to-image API.
//
// The provider returns a transient hosted URL rather than inline image
// bytes, so generation is a two step flow: request a URL, then download and
// base64-encode the body before the URL expires.
package ark

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

	GENERATION_TIMEOUT = 60 * time.Second
	DOWNLOAD_TIMEOUT   = 30 * time.Second

	// provider error strings are capped so a raw transport dump never
	// reaches chat
	MAX_ERROR_LEN = 100
)

type Options struct {
	BaseURL string
	APIKey  string
	// HTTPClient overrides the generation client, mainly for tests
	HTTPClient      *http.Client
	Timeout         time.Duration
	DownloadTimeout time.Duration
}

type Client struct {
	httpClient     *http.Client
	downloadClient *http.Client
	baseURL        string
	apiKey         string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = GENERATION_TIMEOUT
		}
		client = &http.Client{Timeout: timeout}
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = DOWNLOAD_TIMEOUT
	}
	return &Client{
		httpClient:     client,
		downloadClient: &http.Client{Timeout: downloadTimeout},
		baseURL:        base,
		apiKey:         strings.TrimSpace(opts.APIKey),
	}
}

// GenerationRequest holds the parameters for one provider call. Built fresh
// per invocation and never mutated afterwards.
type GenerationRequest struct {
	Prompt        string
	Model         string
	Size          string
	Seed          int
	GuidanceScale float64
	Watermark     bool
}

// GenerationResult is the uniform outcome of a generation call: either a
// hosted image URL or a short human-readable failure message. Expected
// failure modes never surface as Go errors.
type GenerationResult struct {
	OK      bool
	URL     string
	Message string
}

func success(url string) GenerationResult {
	return GenerationResult{OK: true, URL: url}
}

func failure(message string) GenerationResult {
	return GenerationResult{Message: message}
}

type generationPayload struct {
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	ResponseFormat string  `json:"response_format"`
	Size           string  `json:"size"`
	GuidanceScale  float64 `json:"guidance_scale"`
	Watermark      bool    `json:"watermark"`
	Seed           int     `json:"seed"`
	// the provider accepts the key in the body or the header; send both
	APIKey string `json:"api-key"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	URL string `json:"url"`
}

// RequestGeneration POSTs to {base}/images/generations and normalizes the
// response. A 2xx body may carry the URL either as data[0].url or as a
// top-level url field; data takes precedence.
func (c *Client) RequestGeneration(ctx context.Context, req GenerationRequest) GenerationResult {
	payload := generationPayload{
		Model:          req.Model,
		Prompt:         req.Prompt,
		ResponseFormat: "url",
		Size:           req.Size,
		GuidanceScale:  req.GuidanceScale,
		Watermark:      req.Watermark,
		Seed:           req.Seed,
		APIKey:         c.apiKey,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(requestErrorMessage(err))
	}

	endpoint := c.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(requestErrorMessage(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failure(requestErrorMessage(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(requestErrorMessage(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(fmt.Sprintf("图片API请求失败(状态码 %d)", resp.StatusCode))
	}

	var parsed generationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return failure(requestErrorMessage(err))
	}

	var imageURL string
	if len(parsed.Data) > 0 {
		imageURL = parsed.Data[0].URL
	} else if parsed.URL != "" {
		imageURL = parsed.URL
	}
	if imageURL == "" {
		// transport succeeded but the body is useless; distinct failure
		return failure("图片生成API响应成功但未找到图片URL")
	}
	return success(imageURL)
}

// DownloadAndEncode GETs imageURL and base64-encodes the raw bytes. Returns
// (false, message) on any non-200 status or transport error.
func (c *Client) DownloadAndEncode(ctx context.Context, imageURL string) (bool, string) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return false, downloadErrorMessage(err)
	}

	resp, err := c.downloadClient.Do(httpReq)
	if err != nil {
		return false, downloadErrorMessage(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("下载图片失败 (状态: %d)", resp.StatusCode)
	}

	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, downloadErrorMessage(err)
	}
	return true, base64.StdEncoding.EncodeToString(imageBytes)
}

func requestErrorMessage(err error) string {
	return "图片生成HTTP请求时发生意外错误: " + truncateError(err)
}

func downloadErrorMessage(err error) string {
	return "下载或编码图片时发生错误: " + truncateError(err)
}

func truncateError(err error) string {
	return Truncate(err.Error(), MAX_ERROR_LEN)
}

// Truncate clips s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
