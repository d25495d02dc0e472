package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"hirehub/internal/models"
	"hirehub/pkg/apperrors"
)

// Client - REST клиент сервера HireHub
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

var _ Remote = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    trimmed,
		httpClient: httpClient,
	}
}

// SetToken задает bearer токен для следующих запросов, "" - сбросить
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorEnvelope struct {
	Error struct {
		Code    apperrors.ErrorCode `json:"code"`
		Message string              `json:"message"`
	} `json:"error"`
}

// send выполняет запрос и возвращает сырое тело 2xx ответа
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, *Failure) {
	if c.baseURL == "" {
		return nil, &Failure{Kind: FailureUnreachable, Err: fmt.Errorf("api base url is not configured")}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Failure{Kind: FailureUnreachable, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: FailureUnreachable, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: FailureUnreachable, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejected(resp.StatusCode, payload)
	}
	return payload, nil
}

func rejected(status int, payload []byte) *Failure {
	f := &Failure{Kind: FailureRejected, StatusCode: status}

	var env errorEnvelope
	if err := json.Unmarshal(payload, &env); err == nil && (env.Error.Code != "" || env.Error.Message != "") {
		f.Code = env.Error.Code
		f.Message = env.Error.Message
		return f
	}

	// Express-стиль {"message": "..."} или просто текст
	var plain struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &plain); err == nil && plain.Message != "" {
		f.Message = plain.Message
		return f
	}
	f.Message = strings.TrimSpace(string(payload))
	return f
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in any) ([]byte, *Failure) {
	if in == nil {
		return c.send(ctx, method, path, "", nil)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, &Failure{Kind: FailureMalformed, Err: fmt.Errorf("encode request: %w", err)}
	}
	return c.send(ctx, method, path, "application/json", bytes.NewReader(body))
}

// call - запрос + разбор ответа в T
func call[T any](ctx context.Context, c *Client, method, path string, in any) Result[T] {
	payload, f := c.sendJSON(ctx, method, path, in)
	if f != nil {
		return fail[T](f)
	}

	var out T
	if len(bytes.TrimSpace(payload)) == 0 {
		return ok(out)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return fail[T](&Failure{Kind: FailureMalformed, StatusCode: http.StatusOK, Err: fmt.Errorf("decode %s %s: %w", method, path, err)})
	}
	return ok(out)
}

func collectionPath(c Collection, id string) string {
	if id == "" {
		return "/api/" + string(c)
	}
	return "/api/" + string(c) + "/" + url.PathEscape(id)
}

func (c *Client) FetchJobs(ctx context.Context) Result[[]models.Job] {
	return call[[]models.Job](ctx, c, http.MethodGet, collectionPath(CollectionJobs, ""), nil)
}

func (c *Client) FetchApplications(ctx context.Context) Result[[]models.Application] {
	return call[[]models.Application](ctx, c, http.MethodGet, collectionPath(CollectionApplications, ""), nil)
}

func (c *Client) FetchUsers(ctx context.Context) Result[[]models.User] {
	return call[[]models.User](ctx, c, http.MethodGet, collectionPath(CollectionUsers, ""), nil)
}

func (c *Client) Create(ctx context.Context, col Collection, record any) Result[json.RawMessage] {
	return call[json.RawMessage](ctx, c, http.MethodPost, collectionPath(col, ""), record)
}

func (c *Client) Update(ctx context.Context, col Collection, id string, record any) Result[json.RawMessage] {
	return call[json.RawMessage](ctx, c, http.MethodPut, collectionPath(col, id), record)
}

func (c *Client) Delete(ctx context.Context, col Collection, id string) Result[json.RawMessage] {
	return call[json.RawMessage](ctx, c, http.MethodDelete, collectionPath(col, id), nil)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) Result[AuthPayload] {
	return call[AuthPayload](ctx, c, http.MethodPost, "/api/login", req)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[AuthPayload] {
	return call[AuthPayload](ctx, c, http.MethodPost, "/api/register", req)
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) Result[AuthPayload] {
	return call[AuthPayload](ctx, c, http.MethodPost, "/api/verify-otp", req)
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) Result[GeneratePayload] {
	return call[GeneratePayload](ctx, c, http.MethodPost, "/api/ai/generate", req)
}

// Upload отправляет файл multipart-формой, поле "file"
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) Result[UploadPayload] {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fail[UploadPayload](&Failure{Kind: FailureMalformed, Err: fmt.Errorf("create form file: %w", err)})
	}
	if _, err := io.Copy(part, r); err != nil {
		return fail[UploadPayload](&Failure{Kind: FailureMalformed, Err: fmt.Errorf("read upload: %w", err)})
	}
	if err := mw.Close(); err != nil {
		return fail[UploadPayload](&Failure{Kind: FailureMalformed, Err: fmt.Errorf("close form: %w", err)})
	}

	payload, f := c.send(ctx, http.MethodPost, "/api/upload", mw.FormDataContentType(), &buf)
	if f != nil {
		return fail[UploadPayload](f)
	}

	var out UploadPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		return fail[UploadPayload](&Failure{Kind: FailureMalformed, StatusCode: http.StatusOK, Err: fmt.Errorf("decode upload response: %w", err)})
	}
	return ok(out)
}
