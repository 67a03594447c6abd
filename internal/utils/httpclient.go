package utils

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/actorhub/internal/model"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "actorhub-scraper/1.0"
)

// HTTPClient 绑定了站点基础地址的 HTTP 客户端
type HTTPClient struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

// ClientOption 客户端可选项
type ClientOption func(*HTTPClient)

// WithHTTPClient 替换底层 http.Client（测试时注入 httptest 的客户端）
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// WithUserAgent 设置标识请求来源的 User-Agent
func WithUserAgent(ua string) ClientOption {
	return func(h *HTTPClient) {
		if ua = strings.TrimSpace(ua); ua != "" {
			h.userAgent = ua
		}
	}
}

// NewHTTPClient 创建新的HTTP客户端
func NewHTTPClient(baseURL string, opts ...ClientOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("解析基础地址失败: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("基础地址必须是绝对 URL: %q", baseURL)
	}

	c := &HTTPClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   u,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL 客户端绑定的基础地址
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Resolve 把相对地址解析到基础地址上，绝对地址原样返回
func (c *HTTPClient) Resolve(ref string) (string, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("解析地址失败: %w", err)
	}
	return c.baseURL.ResolveReference(r).String(), nil
}

// GetDocument 抓取页面并解析为 goquery 文档
// 任何网络错误、非 200 状态或读取失败都返回 *model.FetchError
func (c *HTTPClient) GetDocument(ctx context.Context, ref string) (*goquery.Document, error) {
	target, err := c.Resolve(ref)
	if err != nil {
		return nil, &model.FetchError{URL: ref, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &model.FetchError{URL: target, Err: fmt.Errorf("创建请求失败: %w", err)}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.FetchError{URL: target, Err: fmt.Errorf("请求失败: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, &model.FetchError{URL: target, Err: err}
	}
	defer reader.Close()

	// 先完整读出，避免读到一半断开时解析出残缺文档
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &model.FetchError{URL: target, Err: fmt.Errorf("读取响应失败: %w", err)}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &model.FetchError{URL: target, Err: fmt.Errorf("解析 HTML 失败: %w", err)}
	}
	return doc, nil
}

// decodeBody 处理 gzip/deflate 压缩的响应体
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("创建gzip读取器失败: %w", err)
		}
		return r, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// setHeaders 设置请求头，User-Agent 用于向站点表明身份
func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
}
