package access

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"parcel-service/internal/service/authz"
)

// Policy decides who may call a route. The zero Policy denies every request,
// so a route can never be left open by omission.
type Policy struct {
	name         string
	public       bool
	any          bool
	requirements func(r *http.Request) []authz.Requirement
}

func (p Policy) String() string {
	if p.name == "" {
		return "undeclared"
	}
	return p.name
}

func Public() Policy {
	return Policy{name: "public", public: true}
}

func Authenticated() Policy {
	return fixed("authenticated", authz.Authenticated())
}

func Admin() Policy {
	return fixed("admin", authz.Admin())
}

func Rider() Policy {
	return fixed("rider", authz.Rider())
}

// SelfQuery requires the identity email to equal the query parameter.
func SelfQuery(param string) Policy {
	return Policy{
		name: "self(" + param + ")",
		requirements: func(r *http.Request) []authz.Requirement {
			return []authz.Requirement{authz.Self(r.URL.Query().Get(param))}
		},
	}
}

// SelfQueryOrAdmin lets an admin through whatever the query parameter says.
func SelfQueryOrAdmin(param string) Policy {
	return Policy{
		name: "self(" + param + ") or admin",
		any:  true,
		requirements: func(r *http.Request) []authz.Requirement {
			return []authz.Requirement{authz.Self(r.URL.Query().Get(param)), authz.Admin()}
		},
	}
}

// RiderSelf requires the rider role and the identity email in the path variable.
func RiderSelf(pathVar string) Policy {
	return Policy{
		name: "rider and self(" + pathVar + ")",
		requirements: func(r *http.Request) []authz.Requirement {
			return []authz.Requirement{authz.Rider(), authz.Self(mux.Vars(r)[pathVar])}
		},
	}
}

func fixed(name string, reqs ...authz.Requirement) Policy {
	return Policy{
		name: name,
		requirements: func(*http.Request) []authz.Requirement {
			return reqs
		},
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
