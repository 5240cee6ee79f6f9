// Package server exposes the extraction engine over HTTP, for tooling
// that wants to inspect what a query requests without embedding the
// library. The handler shape follows the usual GraphQL-over-HTTP
// conventions: POST with a JSON body, GET with query parameters, batch
// arrays, and a GraphQL-style errors list on failure.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	fieldslist "github.com/Mikhus/graphql-fields-list"
	eventbus "github.com/Mikhus/graphql-fields-list/internal/eventbus"
	events "github.com/Mikhus/graphql-fields-list/internal/events"
	language "github.com/Mikhus/graphql-fields-list/internal/language"
	reqid "github.com/Mikhus/graphql-fields-list/internal/reqid"
)

// Handler is an http.Handler serving field extraction requests.
type Handler struct {
	opt Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates the extraction HTTP handler.
func New(opts ...Option) *Handler {
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	return &Handler{opt: op}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if r.Method == http.MethodOptions {
		if len(h.opt.CORS.AllowedOrigins) > 0 {
			setCORSHeaders(w, r, h.opt.CORS)
		}
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, errorResponse("method not allowed"), h.opt.Pretty)
		return
	}

	req, batch, berr := parseRequest(r, h.opt.MaxBodyBytes)
	if berr != "" {
		status = http.StatusBadRequest
		if berr == errBodyTooLargeMessage {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse(berr), h.opt.Pretty)
		return
	}

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if batch != nil {
		out := make([]any, len(batch))
		for i := range batch {
			out[i] = h.executeOne(ctx, batch[i])
		}
		writeJSON(w, status, out, h.opt.Pretty)
		return
	}

	writeJSON(w, status, h.executeOne(ctx, req), h.opt.Pretty)
}

func (h *Handler) executeOne(ctx context.Context, req ExtractRequest) ExtractResult {
	view := req.View
	if view == "" {
		view = ViewMap
	}

	start := time.Now()
	eventbus.Publish(ctx, events.ExtractStart{
		Query:         req.Query,
		OperationName: req.OperationName,
		Field:         req.Field,
		View:          view,
	})
	res, count, err := extract(req, view)
	eventbus.Publish(ctx, events.ExtractFinish{
		Query:         req.Query,
		OperationName: req.OperationName,
		Field:         req.Field,
		View:          view,
		Fields:        count,
		Err:           err,
		Duration:      time.Since(start),
	})
	if err != nil {
		return errorResponse(err.Error())
	}
	return res
}

// Supported view names.
const (
	ViewMap        = "map"
	ViewList       = "list"
	ViewProjection = "projection"
	ViewMask       = "mask"
)

func extract(req ExtractRequest, view string) (ExtractResult, int, error) {
	doc, err := language.ParseQuery(req.Query)
	if err != nil {
		return ExtractResult{}, 0, err
	}

	info := fieldslist.ResolveInfoFromQuery(doc, req.OperationName, req.Field, req.Variables)
	opts := []fieldslist.Option{
		fieldslist.WithPath(req.Path),
		fieldslist.WithSkip(req.Skip...),
		fieldslist.WithTransform(req.Transform),
	}
	if req.WithDirectives != nil {
		opts = append(opts, fieldslist.WithDirectives(*req.WithDirectives))
	}
	if req.KeepParentField {
		opts = append(opts, fieldslist.WithKeepParentField())
	}

	switch view {
	case ViewMap:
		tree := fieldslist.FieldsMap(info, opts...)
		return ExtractResult{Fields: tree}, tree.Len(), nil
	case ViewList:
		names := fieldslist.FieldsList(info, opts...)
		if names == nil {
			names = []string{}
		}
		return ExtractResult{Fields: names}, len(names), nil
	case ViewProjection:
		proj := fieldslist.FieldsProjection(info, opts...)
		return ExtractResult{Fields: proj}, len(proj), nil
	case ViewMask:
		paths := fieldslist.FieldsMask(info, opts...).GetPaths()
		if paths == nil {
			paths = []string{}
		}
		return ExtractResult{Fields: paths}, len(paths), nil
	}
	return ExtractResult{}, 0, &language.Error{Message: "unknown view: " + view}
}

// ------------------ Request parsing ------------------

// ExtractRequest is one extraction job: a query plus the call options
// of the extraction engine and the desired view.
type ExtractRequest struct {
	Query           string            `json:"query"`
	OperationName   string            `json:"operationName,omitempty"`
	Field           string            `json:"field,omitempty"`
	Variables       map[string]any    `json:"variables,omitempty"`
	View            string            `json:"view,omitempty"`
	Path            string            `json:"path,omitempty"`
	Skip            []string          `json:"skip,omitempty"`
	Transform       map[string]string `json:"transform,omitempty"`
	WithDirectives  *bool             `json:"withDirectives,omitempty"`
	KeepParentField bool              `json:"keepParentField,omitempty"`
}

func parseRequest(r *http.Request, maxBody int64) (ExtractRequest, []ExtractRequest, string) {
	if r.Method == http.MethodGet {
		q := r.URL.Query().Get("query")
		if q == "" {
			return ExtractRequest{}, nil, "missing 'query'"
		}
		vars := map[string]any{}
		if v := r.URL.Query().Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &vars); err != nil {
				return ExtractRequest{}, nil, "invalid 'variables' JSON"
			}
		}
		return ExtractRequest{
			Query:         q,
			OperationName: r.URL.Query().Get("operationName"),
			Field:         r.URL.Query().Get("field"),
			View:          r.URL.Query().Get("view"),
			Path:          r.URL.Query().Get("path"),
			Variables:     vars,
		}, nil, ""
	}

	// POST
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" && !strings.HasPrefix(ct, "application/json;") {
		return ExtractRequest{}, nil, "unsupported Content-Type"
	}
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = io.LimitReader(r.Body, maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return ExtractRequest{}, nil, "failed to read body"
	}
	defer r.Body.Close()
	if maxBody > 0 && int64(len(body)) > maxBody {
		return ExtractRequest{}, nil, errBodyTooLargeMessage
	}

	// Try array (batch)
	if len(body) > 0 && body[0] == '[' {
		var arr []ExtractRequest
		if err := json.Unmarshal(body, &arr); err != nil {
			return ExtractRequest{}, nil, "invalid JSON"
		}
		if len(arr) == 0 {
			return ExtractRequest{}, nil, "empty batch"
		}
		return ExtractRequest{}, arr, ""
	}
	// Single
	var req ExtractRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ExtractRequest{}, nil, "invalid JSON"
	}
	if req.Query == "" {
		return ExtractRequest{}, nil, "missing 'query'"
	}
	return req, nil, ""
}

// ------------------ Response formatting ------------------

type specError struct {
	Message string `json:"message"`
}

// ExtractResult is the response body for one extraction job.
type ExtractResult struct {
	Fields any         `json:"fields"`
	Errors []specError `json:"errors,omitempty"`
}

func errorResponse(message string) ExtractResult {
	return ExtractResult{Errors: []specError{{Message: message}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

const errBodyTooLargeMessage = "body too large"

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	wildcard := false
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			allowed = true
			wildcard = true
		} else if o == origin {
			allowed = true
		}
	}
	if !allowed {
		return
	}
	if wildcard {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}
