package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/core"
)

var ErrNoResponse = errors.New("transport: no response")

const RequestIDHeader = "X-Request-Id"

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// JSON decodes the body as a JSON object. Numbers are kept as json.Number so
// that numeric ids survive as their literal text.
func (r *Response) JSON() (core.Object, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var out core.Object
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response %s: %w", r.RequestID, err)
	}
	return out, nil
}

// Fetcher issues a blocking GET. A nil response always comes with an error.
// Bodies are always read in full; there is no streaming mode.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string, body io.Reader) (*Response, error)
}

// Collector is the colly-backed Fetcher. Each call uses a fresh synchronous
// collector, so nothing is shared between requests.
type Collector struct {
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

var _ Fetcher = (*Collector)(nil)

func (c *Collector) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.L()
}

func (c *Collector) Get(ctx context.Context, url string, headers map[string]string, body io.Reader) (*Response, error) {
	ctx, span := otel.Tracer("transport").Start(ctx, "get")
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("http.url", url), attribute.String("request.id", requestID))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col := colly.NewCollector(colly.AllowURLRevisit())
	col.MaxBodySize = 0
	if c.UserAgent != "" {
		col.UserAgent = c.UserAgent
	}
	if c.Timeout > 0 {
		col.SetRequestTimeout(c.Timeout)
	}

	var out *Response
	col.OnRequest(InjectRequestHeaders(headers))
	col.OnRequest(InjectRequestHeaders(map[string]string{
		RequestIDHeader: requestID,
		"Accept":        "application/json",
	}))
	col.OnRequest(AbortWhenDone(ctx))
	col.OnResponse(LogResponses(c.logger()))
	col.OnResponse(func(r *colly.Response) {
		out = &Response{
			StatusCode: r.StatusCode,
			Body:       r.Body,
			RequestID:  requestID,
		}
		if r.Headers != nil {
			out.Header = *r.Headers
		}
	})

	c.logger().Info("GET", zap.String("url", url), zap.String("requestId", requestID))
	err := col.Request(http.MethodGet, url, body, nil, nil)
	if err == nil && out == nil {
		err = ErrNoResponse
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", out.StatusCode))
	return out, nil
}

func LogResponses(logger *zap.Logger) func(r *colly.Response) {
	return func(r *colly.Response) {
		logger.Debug("response",
			zap.Int("status", r.StatusCode),
			zap.Int("bytes", len(r.Body)),
			zap.String("url", r.Request.URL.String()),
		)
	}
}

func InjectRequestHeaders(headers map[string]string) func(r *colly.Request) {
	return func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	}
}

func AbortWhenDone(ctx context.Context) func(r *colly.Request) {
	return func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	}
}
