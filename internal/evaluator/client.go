// Package evaluator obtains FAIR evaluation documents, either from the
// remote FAIR EVA API or from a local JSON fixture in development mode.
package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// logsKey is the reserved top-level key carrying evaluator diagnostics; it is
// skipped when selecting the data group.
const logsKey = "evaluator_logs"

// Document is one evaluation group as decoded JSON, keyed by FAIR principle
// name. The shape is owned by the upstream API and treated as opaque here.
type Document map[string]any

// Client produces one evaluation document per call.
type Client interface {
	Evaluate(ctx context.Context, id, lang string) (Document, error)
}

// ErrNoData is returned when a document was loaded but contained no usable
// data group.
var ErrNoData = errors.New("no evaluation data returned")

// LoadError wraps any file, network, HTTP-status or parse failure while
// obtaining the evaluation document.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load evaluation: %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// HTTPClient calls the FAIR EVA API. One synchronous POST per evaluation;
// no retries, no caching.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a production client for the API at apiURL:apiPort.
func NewHTTPClient(apiURL string, apiPort int, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(apiURL, "/") + ":" + strconv.Itoa(apiPort),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Evaluate(ctx context.Context, id, lang string) (Document, error) {
	payload, err := json.Marshal(map[string]string{"id": id, "lang": lang})
	if err != nil {
		return nil, &LoadError{Op: "encode request", Err: err}
	}

	url := c.baseURL + "/v1.0/rda/rda_all"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &LoadError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Op: "call API", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &LoadError{
			Op:  "call API",
			Err: fmt.Errorf("POST %s: %d %s", url, resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	doc, err := firstGroup(resp.Body)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, err
		}
		return nil, &LoadError{Op: "decode response", Err: err}
	}
	return doc, nil
}

// FileClient loads the evaluation document from a local JSON file. Used in
// development mode instead of the remote API; the identifier and language
// are ignored.
type FileClient struct {
	path string
}

func NewFileClient(path string) *FileClient {
	return &FileClient{path: path}
}

func (c *FileClient) Evaluate(_ context.Context, _, _ string) (Document, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &LoadError{Op: "open sample file", Err: err}
	}
	defer f.Close()

	doc, err := firstGroup(f)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, err
		}
		return nil, &LoadError{Op: "decode sample file", Err: err}
	}
	return doc, nil
}

// firstGroup decodes the value of the first top-level key, in document
// order, that is not the reserved logging key. Go maps do not preserve key
// order, so the token stream is scanned directly.
func firstGroup(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("document is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		key, _ := keyTok.(string)
		if key == logsKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip %s: %w", logsKey, err)
			}
			continue
		}

		var doc Document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group %q: %w", key, err)
		}
		if len(doc) == 0 {
			return nil, ErrNoData
		}
		return doc, nil
	}
	return nil, ErrNoData
}
