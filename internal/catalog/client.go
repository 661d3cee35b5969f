package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
)

var (
	// ErrLookupFailed covers every failed lookup: not found, transport and
	// decoding errors alike.
	ErrLookupFailed = errors.New("lookup failed")
	// ErrNotFound is returned (wrapped in ErrLookupFailed) on a 404.
	ErrNotFound = errors.New("creature not found")
	// ErrEmptyQuery is returned when the query is blank after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrInvalidQuery is returned (wrapped in ErrLookupFailed) for queries
	// that are not a creature name or id. No request is made for them.
	ErrInvalidQuery = errors.New("invalid query")
)

// queryPattern is the shape of catalog names and ids ("25", "mr-mime").
var queryPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const pokemonPath = "/api/v2/pokemon/"

// maxBodyBytes bounds the decoded response; a full pokemon document is ~300KB.
const maxBodyBytes = 4 << 20

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client

	tracer trace.Tracer
}

func NewClient(name string, baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url %q: %w", name, baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid %s base url %q: scheme and host are required", name, baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Name:    name,
		BaseURL: u,
		HTTP:    httpClient,
		tracer:  otel.Tracer("pokedeck/catalog"),
	}, nil
}

// Lookup fetches one creature by name or numeric id. The query is trimmed
// and lower-cased before it is put in the path.
func (c *Client) Lookup(ctx context.Context, query string) (Creature, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Creature{}, ErrEmptyQuery
	}
	if !queryPattern.MatchString(q) {
		return Creature{}, fmt.Errorf("%w: %q: %w", ErrLookupFailed, q, ErrInvalidQuery)
	}

	ctx, span := c.tracer.Start(ctx, "catalog.Lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.query", q)),
	)
	defer span.End()

	creature, err := c.lookup(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Creature{}, err
	}
	span.SetAttributes(attribute.Int("catalog.id", creature.ID))
	return creature, nil
}

func (c *Client) lookup(ctx context.Context, q string) (Creature, error) {
	resp, err := c.Do(ctx, http.MethodGet, pokemonPath+url.PathEscape(q), "", nil, nil)
	if err != nil {
		return Creature{}, fmt.Errorf("%w: %s request: %w", ErrLookupFailed, c.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Creature{}, fmt.Errorf("%w: %q: %w", ErrLookupFailed, q, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Creature{}, fmt.Errorf("%w: %s returned status %d", ErrLookupFailed, c.Name, resp.StatusCode)
	}

	var body pokemonResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return Creature{}, fmt.Errorf("%w: decode %s response: %w", ErrLookupFailed, c.Name, err)
	}
	if body.Name == "" {
		return Creature{}, fmt.Errorf("%w: %s response has no name", ErrLookupFailed, c.Name)
	}
	return body.toCreature(), nil
}

func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader, inHeaders http.Header) (*http.Response, error) {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	for k, vv := range inHeaders {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return c.HTTP.Do(req)
}
