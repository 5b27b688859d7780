package access

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/authz"
	"parcel-service/pkg/logger"
)

// Router registers every route together with its access policy.
type Router struct {
	router   *mux.Router
	log      handlerLogger
	verifier IdentityVerifier
	gate     Gate
}

func NewRouter(router *mux.Router, log handlerLogger, verifier IdentityVerifier, gate Gate) *Router {
	return &Router{
		router:   router,
		log:      log.With(logger.NewField("component", "access")),
		verifier: verifier,
		gate:     gate,
	}
}

func (rt *Router) Handle(path string, policy Policy, handler http.Handler) *mux.Route {
	return rt.router.Handle(path, rt.guard(policy, handler))
}

func (rt *Router) guard(policy Policy, next http.Handler) http.Handler {
	if policy.public {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if policy.requirements == nil {
			rt.log.Error("route has no access policy", logger.NewField("path", r.URL.Path))
			response.Error(w, rt.log, http.StatusForbidden, "access denied")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			response.Error(w, rt.log, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		identity, err := rt.verifier.Verify(r.Context(), token)
		if err != nil {
			rt.log.Info("token verification failed", logger.NewField("error", err))
			response.Error(w, rt.log, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := r.Context()
		reqs := policy.requirements(r)
		if policy.any {
			err = rt.gate.AuthorizeAny(ctx, identity, reqs...)
		} else {
			err = rt.gate.AuthorizeAll(ctx, identity, reqs...)
		}
		if err != nil {
			switch {
			case errors.Is(err, authz.ErrUnauthorized):
				response.Error(w, rt.log, http.StatusUnauthorized, "unauthorized")
			case errors.Is(err, authz.ErrForbidden):
				rt.log.Info("access denied",
					logger.NewField("policy", policy.String()),
					logger.NewField("path", r.URL.Path),
					logger.NewField("email", identity.Email),
				)
				response.Error(w, rt.log, http.StatusForbidden, "forbidden")
			default:
				response.InternalError(w, rt.log, err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, identity)))
	})
}
