package erpnext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client is the surface the dispatcher talks to. v1 implements it with
// direct calls against the ERPNext resource API.
type Client interface {
	// Create posts a payload to /api/resource/<doctype>.
	Create(ctx context.Context, doctype string, payload any) (Response, error)
	// Update puts a payload to /api/resource/<doctype>/<name>.
	Update(ctx context.Context, doctype, name string, payload any) (Response, error)
	// Records fetches the record list for a doctype, optionally filtered.
	Records(ctx context.Context, doctype string, filters []Filter) ([]map[string]any, error)
	// Method posts to an /api/method RPC endpoint.
	Method(ctx context.Context, method string, payload any) (Response, error)
	// Exists reports whether a named record of the doctype exists.
	Exists(ctx context.Context, doctype, name string) (bool, error)
}

// Response is a decoded ERP reply. The API signals success by including a
// "data" key; anything else is treated as a failure by the dispatcher.
type Response map[string]any

func (r Response) HasData() bool {
	_, ok := r["data"]
	return ok
}

// Data returns the "data" object when present and object-shaped.
func (r Response) Data() map[string]any {
	d, _ := r["data"].(map[string]any)
	return d
}

// ErrorDetail returns whatever failure detail the response carries.
func (r Response) ErrorDetail() string {
	if e, ok := r["error"].(string); ok {
		return e
	}
	b, _ := json.Marshal(map[string]any(r))
	return string(b)
}

// Filter is one [doctype, field, operator, value] quadruple of the ERP's
// structured filter expression.
type Filter [4]any

func Eq(doctype, field string, value any) Filter {
	return Filter{doctype, field, "=", value}
}

func In(doctype, field string, values ...string) Filter {
	return Filter{doctype, field, "in", values}
}

// Credentials hold the process-wide ERP credential pair. Token, when set,
// switches the transport to bearer authentication.
type Credentials struct {
	APIKey    string
	APISecret string
	Token     string
}

type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials
}

func NewClient(baseURL string, creds Credentials) *RESTClient {
	hc := &http.Client{Timeout: 20 * time.Second}
	if creds.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token, TokenType: "Bearer"})
		hc = oauth2.NewClient(context.Background(), src)
		hc.Timeout = 20 * time.Second
	}
	return &RESTClient{
		httpClient: hc,
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
	}
}

func (c *RESTClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Bearer auth is handled by the oauth2 transport when a token is set.
	if c.creds.Token == "" && c.creds.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.creds.APIKey, c.creds.APISecret))
	}
	return c.httpClient.Do(req)
}

func resourcePath(doctype string) string {
	return "/api/resource/" + url.PathEscape(doctype)
}

// send posts or puts JSON and decodes the reply. A non-2xx status is not an
// error here: the body is wrapped under an "error" key so the dispatcher's
// success predicate fails uniformly, matching how the ERP reports rejections.
func (c *RESTClient) send(ctx context.Context, method, path string, payload any) (Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, method, path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return Response{"error": strings.TrimSpace(string(detail))}, nil
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erp %s %s: decoding response: %w", method, path, err)
	}
	return out, nil
}

func (c *RESTClient) Create(ctx context.Context, doctype string, payload any) (Response, error) {
	return c.send(ctx, http.MethodPost, resourcePath(doctype), payload)
}

func (c *RESTClient) Update(ctx context.Context, doctype, name string, payload any) (Response, error) {
	return c.send(ctx, http.MethodPut, resourcePath(doctype)+"/"+url.PathEscape(name), payload)
}

func (c *RESTClient) Method(ctx context.Context, method string, payload any) (Response, error) {
	return c.send(ctx, http.MethodPost, "/api/method/"+method, payload)
}

func (c *RESTClient) Records(ctx context.Context, doctype string, filters []Filter) ([]map[string]any, error) {
	path := resourcePath(doctype)
	if len(filters) > 0 {
		fb, err := json.Marshal(filters)
		if err != nil {
			return nil, err
		}
		qv := url.Values{}
		qv.Set("filters", string(fb))
		path += "?" + qv.Encode()
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("erp list %s failed: %s", doctype, strings.TrimSpace(string(detail)))
	}
	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *RESTClient) Exists(ctx context.Context, doctype, name string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, resourcePath(doctype)+"/"+url.PathEscape(name), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK, nil
}
