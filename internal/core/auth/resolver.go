package auth

import "strings"

// IdentityState is the outcome of resolving an Authorization header.
type IdentityState int

const (
	// StateAnonymous — no credential presented. Valid for public routes.
	StateAnonymous IdentityState = iota
	// StateAuthenticated — a valid credential was presented.
	StateAuthenticated
	// StateRejected — a credential was presented but did not verify
	// (wrong scheme, malformed, bad signature, or expired).
	StateRejected
)

// Identity is the tri-state result of credential resolution. Resolution
// itself never fails; each caller decides what a given state means for
// the action at hand (a public read tolerates Rejected, a mutation does
// not).
type Identity struct {
	State     IdentityState
	Principal *Principal
	// Reason carries the decode failure when State is StateRejected.
	Reason error
}

// Authenticated reports whether the identity carries a verified principal.
func (id Identity) Authenticated() bool {
	return id.State == StateAuthenticated && id.Principal != nil
}

// Anonymous is the identity of a caller that presented no credential.
func Anonymous() Identity {
	return Identity{State: StateAnonymous}
}

// Resolver extracts and validates bearer credentials from request headers.
type Resolver struct {
	codec *Codec
}

func NewResolver(codec *Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve derives an Identity from the raw Authorization header value.
// An empty header yields Anonymous; anything present but unverifiable
// yields Rejected with the reason attached.
func (r *Resolver) Resolve(authorization string) Identity {
	if authorization == "" {
		return Anonymous()
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Identity{State: StateRejected, Reason: ErrTokenInvalid}
	}

	principal, err := r.codec.Decode(strings.TrimSpace(parts[1]))
	if err != nil {
		return Identity{State: StateRejected, Reason: err}
	}
	return Identity{State: StateAuthenticated, Principal: principal}
}
