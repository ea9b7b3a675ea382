// Package middleware checks JSON request bodies against a template before
// they reach a net/http handler.
package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/reoring/jscan"
)

// DefaultMaxBytes caps request bodies when Options.Parse leaves MaxBytes
// unset.
const DefaultMaxBytes = 1 << 20

type ctxKeyData struct{}

// ContextWithData attaches the decoded request body to ctx.
func ContextWithData(ctx context.Context, data any) context.Context {
	return context.WithValue(ctx, ctxKeyData{}, data)
}

// DataFromContext returns the body decoded by Validate. Objects are
// *jscan.Object and numbers json.Number.
func DataFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyData{})
	return v, v != nil
}

// DefaultParseOpt is the parse configuration for HTTP boundaries: duplicate
// keys are errors and bodies are capped at DefaultMaxBytes.
func DefaultParseOpt() jscan.ParseOpt {
	return jscan.ParseOpt{
		Strictness: jscan.Strictness{OnDuplicateKey: jscan.Error},
		MaxBytes:   DefaultMaxBytes,
	}
}

// Options configures Validate.
type Options struct {
	// Parse defaults to DefaultParseOpt when it is the zero value.
	Parse    jscan.ParseOpt
	Validate jscan.ValidateOpt
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// ErrorPayload shapes issues for JSON responses.
func ErrorPayload(requestID string, issues jscan.Issues) map[string]any {
	return map[string]any{"requestId": requestID, "issues": issues}
}

// Validate returns middleware that decodes the request body and checks it
// against t in the given mode. Unparseable bodies get 400, bodies with issues
// get 422, both with an ErrorPayload. Otherwise the decoded body is stored in
// the request context and next is called.
func Validate(t jscan.Template, mode jscan.Mode, opts ...Options) func(http.Handler) http.Handler {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if p := opt.Parse; p.Strictness == (jscan.Strictness{}) && p.MaxDepth == 0 && p.MaxBytes == 0 && p.OnWarning == nil {
		opt.Parse = DefaultParseOpt()
	}
	if opt.Logger == nil {
		opt.Logger = logrus.StandardLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.New().String()
			log := opt.Logger.WithFields(logrus.Fields{"requestId": id, "path": req.URL.Path})

			body := req.Body
			if opt.Parse.MaxBytes > 0 {
				body = http.MaxBytesReader(w, body, opt.Parse.MaxBytes)
			}
			data, err := jscan.ParseData(req.Context(), jscan.JSONReader(body), opt.Parse)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.WithError(err).Debug("request body rejected")
				writeJSON(w, log, http.StatusBadRequest, ErrorPayload(id, jscan.Issues{jscan.ParseErrorIssue(err)}))
				return
			}
			if iss := jscan.Validate(t, data, mode, opt.Validate); len(iss) > 0 {
				log.WithField("issues", len(iss)).Debug("request body does not match template")
				writeJSON(w, log, http.StatusUnprocessableEntity, ErrorPayload(id, iss))
				return
			}
			next.ServeHTTP(w, req.WithContext(ContextWithData(req.Context(), data)))
		})
	}
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encode response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
