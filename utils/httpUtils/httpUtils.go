package httpUtils

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Brawl345/doggobot/logger"
)

var (
	log               = logger.New("httpUtils")
	DefaultHttpClient *http.Client
)

type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

func init() {
	DefaultHttpClient = createHTTPClient()
}

func createHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 7 * time.Second
	transport.ResponseHeaderTimeout = 15 * time.Second
	transport.MaxIdleConnsPerHost = 20
	transport.IdleConnTimeout = 5 * time.Minute

	client := &http.Client{
		Transport: transport,
	}

	return client
}

type RequestOptions struct {
	Method   Method
	URL      string
	Headers  map[string]string
	Body     any
	Response any
	Client   *http.Client
}

// MakeRequest performs an HTTP request and decodes the JSON body into
// opts.Response. Non-2xx statuses are returned as *HttpError.
func MakeRequest(opts RequestOptions) error {
	log.Debug().
		Str("url", opts.URL).
		Str("method", string(opts.Method)).
		Send()

	var reqBody io.Reader
	if opts.Body != nil {
		jsonData, err := json.Marshal(opts.Body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(string(opts.Method), opts.URL, reqBody)
	if err != nil {
		return err
	}

	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	httpClient := DefaultHttpClient
	if opts.Client != nil {
		httpClient = opts.Client
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HttpError{
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if opts.Response != nil {
		if err := json.Unmarshal(body, opts.Response); err != nil {
			return err
		}
	}

	log.Debug().
		Str("url", opts.URL).
		Interface("result", opts.Response).
		Send()

	return nil
}
