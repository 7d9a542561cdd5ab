package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// 默认的随机引文接口与长度范围。
const (
	DefaultURL       = "https://api.quotable.io/quotes/random"
	DefaultMinLength = 80
	DefaultMaxLength = 400
	DefaultTimeout   = 15 * time.Second
)

// Quote 是一条引文及其作者。
type Quote struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags,omitempty"`
}

// Source 提供一条随机引文。
type Source interface {
	Random(ctx context.Context) (Quote, error)
}

// Options 配置 HTTP 引文源。Tags 为空且 TagsFile 非空时从文件读取标签。
type Options struct {
	URL       string
	MinLength int
	MaxLength int
	Tags      []string
	TagsFile  string
	Timeout   time.Duration
}

// Client 从 Quotable 风格的接口获取随机引文，每次请求随机挑选一个标签。
type Client struct {
	opts Options
	http *http.Client
	pick func(n int) int
}

var _ Source = (*Client)(nil)

// NewClient 创建引文客户端；hc 为空时使用带超时的默认客户端。
func NewClient(opts Options, hc *http.Client) (*Client, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.Tags) == 0 && opts.TagsFile != "" {
		tags, err := LoadTags(opts.TagsFile)
		if err != nil {
			return nil, err
		}
		opts.Tags = tags
	}
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{opts: opts, http: hc, pick: rand.IntN}, nil
}

// Random 请求一条随机引文，返回数组中的第一条。
func (c *Client) Random(ctx context.Context) (Quote, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return Quote{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("构造引文请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("请求引文失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, fmt.Errorf("引文接口返回 %s: %s", resp.Status, body)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return Quote{}, fmt.Errorf("解析引文响应失败: %w", err)
	}
	if len(quotes) == 0 {
		return Quote{}, fmt.Errorf("引文接口未返回任何引文")
	}
	return quotes[0], nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.opts.URL)
	if err != nil {
		return "", fmt.Errorf("引文地址 %s 无效: %w", c.opts.URL, err)
	}
	q := u.Query()
	q.Set("minLength", strconv.Itoa(c.opts.MinLength))
	q.Set("maxLength", strconv.Itoa(c.opts.MaxLength))
	if len(c.opts.Tags) > 0 {
		q.Set("tags", c.opts.Tags[c.pick(len(c.opts.Tags))])
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type tagFile struct {
	SuitableTags []string `json:"suitable_tags"`
}

// LoadTags 读取 {"suitable_tags": [...]} 格式的标签文件。
func LoadTags(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取标签文件 %s 失败: %w", path, err)
	}
	var f tagFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析标签文件 %s 失败: %w", path, err)
	}
	return f.SuitableTags, nil
}

// Static 总是返回同一条引文，用于命令行直接指定内容。
type Static Quote

// Random implements Source.
func (s Static) Random(context.Context) (Quote, error) { return Quote(s), nil }
