// Package etcd adapts an etcd v2 HTTP key-value store as a configuration
// source. A configuration section maps to a store directory node and a key
// to a leaf node holding a string value, so the path server.http.port lives
// at <prefix>/server/http/port in the store's key space.
//
// The adapter holds one lazily-created HTTP client for its lifetime and does
// not retry: retry policy belongs to the caller. Any transport failure,
// timeout, or server-side error surfaces as source.ErrUnavailable — never as
// "key absent", which would silently break layer precedence.
package etcd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/stratumcfg/stratum/coerce"
	"github.com/stratumcfg/stratum/source"
)

const defaultTimeout = 5 * time.Second

// Store is the remote store adapter. It implements source.Source and
// source.Writer. Like every adapter it is not internally synchronized;
// concurrent callers need their own serialization or their own Store.
type Store struct {
	baseURL string
	prefix  string
	timeout time.Duration
	logger  *zap.Logger

	once   sync.Once
	client *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix roots the configuration tree under a key-space prefix such as
// "/config/myapp". Default is "/config".
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = "/" + strings.Trim(prefix, "/") }
}

// WithTimeout bounds each request round-trip. Expiry surfaces as
// source.ErrUnavailable. Default is 5s.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithLogger enables debug logging of store round-trips.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store against an endpoint such as "http://127.0.0.1:2379".
// No connection is made until the first read or write.
func New(endpoint string, opts ...Option) *Store {
	s := &Store{
		baseURL: strings.TrimRight(endpoint, "/"),
		prefix:  "/config",
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) httpClient() *http.Client {
	s.once.Do(func() {
		s.client = &http.Client{Timeout: s.timeout}
	})
	return s.client
}

func (s *Store) keyFor(p source.Path) string {
	if len(p) == 0 {
		return s.prefix
	}
	return s.prefix + "/" + strings.Join(p, "/")
}

// etcd v2 wire format.
type node struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Dir   bool   `json:"dir"`
	Nodes []node `json:"nodes"`
}

type keysResponse struct {
	Action string `json:"action"`
	Node   *node  `json:"node"`
}

type storeError struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Cause     string `json:"cause"`
}

func (s *Store) Read(p source.Path) (source.Lookup, error) {
	if len(p) == 0 {
		return source.Lookup{}, fmt.Errorf("read %q: %w", p.String(), source.ErrTypeMismatch)
	}
	resp, found, err := s.get(p)
	if err != nil || !found {
		return source.Lookup{}, err
	}
	if resp.Node == nil {
		return source.Lookup{}, nil
	}
	if resp.Node.Dir {
		return source.Lookup{}, fmt.Errorf("read %q: node is a directory: %w",
			p.String(), source.ErrTypeMismatch)
	}
	return source.Lookup{Value: resp.Node.Value, Found: true}, nil
}

func (s *Store) Keys(p source.Path) ([]string, error) {
	keys, _, err := s.children(p)
	return keys, err
}

func (s *Store) Sections(p source.Path) ([]string, error) {
	_, sections, err := s.children(p)
	return sections, err
}

func (s *Store) children(p source.Path) (keys, sections []string, err error) {
	resp, found, err := s.get(p)
	if err != nil || !found {
		return nil, nil, err
	}
	if resp.Node == nil {
		return nil, nil, nil
	}
	if !resp.Node.Dir {
		return nil, nil, fmt.Errorf("list %q: node is not a directory: %w",
			p.String(), source.ErrTypeMismatch)
	}
	for _, child := range resp.Node.Nodes {
		name := child.Key[strings.LastIndex(child.Key, "/")+1:]
		if child.Dir {
			sections = append(sections, name)
		} else {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	sort.Strings(sections)
	return keys, sections, nil
}

// Write upserts the leaf node for p. etcd creates intermediate directory
// nodes implicitly. Values are stored in their canonical string form.
func (s *Store) Write(p source.Path, value any) error {
	if len(p) == 0 {
		return fmt.Errorf("write %q: %w", p.String(), source.ErrTypeMismatch)
	}
	raw, err := coerce.Serialize(value)
	if err != nil {
		return fmt.Errorf("write %q: %w", p.String(), err)
	}
	body := url.Values{"value": {raw}}.Encode()
	req, err := http.NewRequest(http.MethodPut, s.baseURL+"/v2/keys"+s.keyFor(p),
		strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("write %q: %w", p.String(), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.do(req)
	if err != nil {
		return s.unavailable("put", p, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return s.unavailable("put", p, fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("write %q: %s", p.String(), s.decodeError(resp))
	}
	return nil
}

// Delete removes the leaf node for p. An absent node is a no-op.
func (s *Store) Delete(p source.Path) error {
	if len(p) == 0 {
		return fmt.Errorf("delete %q: %w", p.String(), source.ErrTypeMismatch)
	}
	req, err := http.NewRequest(http.MethodDelete, s.baseURL+"/v2/keys"+s.keyFor(p), nil)
	if err != nil {
		return fmt.Errorf("delete %q: %w", p.String(), err)
	}
	resp, err := s.do(req)
	if err != nil {
		return s.unavailable("delete", p, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil
	case resp.StatusCode >= 500:
		return s.unavailable("delete", p, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return fmt.Errorf("delete %q: %s", p.String(), s.decodeError(resp))
	}
	return nil
}

// get performs a point lookup. found=false only for a clean 404; every other
// failure is an error.
func (s *Store) get(p source.Path) (keysResponse, bool, error) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/v2/keys"+s.keyFor(p), nil)
	if err != nil {
		return keysResponse{}, false, fmt.Errorf("get %q: %w", p.String(), err)
	}
	resp, err := s.do(req)
	if err != nil {
		return keysResponse{}, false, s.unavailable("get", p, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return keysResponse{}, false, nil
	case resp.StatusCode >= 500:
		return keysResponse{}, false, s.unavailable("get", p, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return keysResponse{}, false, fmt.Errorf("get %q: %s", p.String(), s.decodeError(resp))
	}
	var decoded keysResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return keysResponse{}, false, s.unavailable("get", p, fmt.Errorf("decode response: %w", err))
	}
	return decoded, true, nil
}

func (s *Store) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := s.httpClient().Do(req)
	if err != nil {
		s.logger.Debug("etcd request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Error(err))
		return nil, err
	}
	s.logger.Debug("etcd request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

func (s *Store) unavailable(op string, p source.Path, cause error) error {
	return fmt.Errorf("etcd %s %q: %w: %v", op, p.String(), source.ErrUnavailable, cause)
}

func (s *Store) decodeError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	var se storeError
	if json.Unmarshal(data, &se) == nil && se.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, se.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

var (
	_ source.Source = (*Store)(nil)
	_ source.Writer = (*Store)(nil)
)
