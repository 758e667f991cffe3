package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// defaultTimeout bounds every request to the classification service.
// Timeouts surface as TransportError.
const defaultTimeout = 30 * time.Second

// Client talks to the remote classification service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the service at baseURL (no trailing
// slash required).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWith creates a Client using an explicit http.Client.
func NewClientWith(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// predictResponse is the wire shape of a successful classification.
type predictResponse struct {
	Class       string    `json:"class"`
	Probability []float64 `json:"probability"`
}

// errorResponse is the wire shape of a non-2xx body.
type errorResponse struct {
	Error string `json:"error"`
}

// Classify uploads one image and returns the validated result.
// Network-level failures and unparseable bodies return *TransportError,
// non-2xx responses return *RemoteError, and contract violations in a
// 2xx body return *ValidationError.
func (c *Client) Classify(ctx context.Context, image []byte, cfg Config) (ClassificationResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "scan.jpg")
	if err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}
	if _, err := fw.Write(image); err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}
	_ = mw.WriteField("resolution", strconv.Itoa(cfg.Resolution))
	_ = mw.WriteField("isGrayscale", strconv.FormatBool(cfg.Grayscale))
	if err := mw.Close(); err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ClassificationResult{}, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ClassificationResult{}, &RemoteError{
			Status:  resp.StatusCode,
			Message: remoteMessage(data),
		}
	}

	var pr predictResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return ClassificationResult{}, &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return newResult(pr.Class, pr.Probability)
}

// CurrentModel returns the name of the model the service is serving.
func (c *Client) CurrentModel(ctx context.Context) (string, error) {
	var out struct {
		Model string `json:"model"`
	}
	if err := c.getJSON(ctx, "/model", &out); err != nil {
		return "", err
	}
	return out.Model, nil
}

// Models returns the list of model names available for selection.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var out struct {
		Models []string `json:"models"`
	}
	if err := c.getJSON(ctx, "/models", &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

// SelectModel asks the service to switch models and returns the newly
// active model name.
func (c *Client) SelectModel(ctx context.Context, name string) (string, error) {
	payload, err := json.Marshal(map[string]string{"model": name})
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/model/select", bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Model string `json:"model"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	return out.Model, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Err: err}
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: remoteMessage(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// remoteMessage extracts the error field from a non-2xx body, falling
// back to a trimmed copy of the raw body.
func remoteMessage(data []byte) string {
	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Error != "" {
		return er.Error
	}
	const maxRaw = 200
	s := string(bytes.TrimSpace(data))
	if len(s) > maxRaw {
		s = s[:maxRaw]
	}
	return s
}
