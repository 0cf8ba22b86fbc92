package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

type scopeContextKey struct{ name string }

var scopeCtxKey = &scopeContextKey{"scopes"}

var tracer = otel.Tracer("gps-device-mgmt/authz")

type Scope string

// ScopeOperator guards the fleet management surface, queueing power
// instructions and reading every device's whereabouts.
var ScopeOperator Scope = Scope("operator")

type Authorizer interface {
	RequireScope(scopes ...Scope) func(http.Handler) http.Handler
}

type impl struct {
	query rego.PreparedEvalQuery
}

func NewAuthorizer(ctx context.Context, policies io.Reader) (Authorizer, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.opentracker.authz.allow"),
		rego.Module("authz.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

func (a *impl) RequireScope(scopes ...Scope) func(http.Handler) http.Handler {

	requiredScopes := make([]string, 0, len(scopes))
	for _, s := range scopes {
		requiredScopes = append(requiredScopes, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			_, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := r.Header.Get("Authorization")

			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"token":  token[7:],
				"scopes": requiredScopes,
			}

			results, err := a.query.Eval(r.Context(), rego.EvalInput(input))
			if err != nil {
				logger.Error("opa eval failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error("auth failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			binding := results[0].Bindings["x"]

			// If authz fails we will get back a single bool. Check for that first.
			allowed, ok := binding.(bool)
			if ok && !allowed {
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// If authz succeeds we should expect a result object here
			result, ok := binding.(map[string]any)
			if !ok {
				err = errors.New("unexpected result type")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			anyScopes, ok := result["scopes"].([]any)
			if !ok {
				err = errors.New("bad response from authz policy engine")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			granted := map[Scope]struct{}{}
			for _, s := range anyScopes {
				scope, ok := s.(string)
				if !ok {
					logger.Error("rego response type error")
					http.Error(w, "rego error", http.StatusInternalServerError)
					return
				}
				granted[Scope(scope)] = struct{}{}
			}

			for _, s := range scopes {
				if _, ok := granted[s]; !ok {
					err = errors.New("authorization failed")
					logger.Warn(err.Error())
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithScopes(r.Context(), granted)))
		})
	}
}

func WithScopes(ctx context.Context, scopes map[Scope]struct{}) context.Context {
	return context.WithValue(ctx, scopeCtxKey, scopes)
}

// HasScope reports whether the request this context belongs to was granted
// the given scope.
func HasScope(ctx context.Context, scope Scope) bool {
	scopes, ok := ctx.Value(scopeCtxKey).(map[Scope]struct{})
	if !ok {
		return false
	}

	_, ok = scopes[scope]
	return ok
}
