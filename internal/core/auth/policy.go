// Package auth holds the credential codec, identity resolution, and the
// authorization policy. The policy is the single decision surface for
// every endpoint: pure functions, no I/O, independently testable without
// the transport layer.
package auth

import "github.com/roadwatch/roadwatch-api/internal/core/domain"

// DenialReason explains why a policy decision denied an action.
type DenialReason string

const (
	ReasonNotAuthenticated DenialReason = "not_authenticated"
	ReasonNotAdmin         DenialReason = "not_admin"
	ReasonNotOwner         DenialReason = "not_owner"
)

// Decision is the result of a policy check.
type Decision struct {
	Allowed bool
	Reason  DenialReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenialReason) Decision {
	return Decision{Reason: reason}
}

// CanListReports: reading reports is public, including anonymous and
// rejected identities.
func CanListReports(Identity) Decision {
	return allow()
}

// CanCreateReport allows any authenticated principal, regardless of role.
func CanCreateReport(id Identity) Decision {
	if !id.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	return allow()
}

// CanUpdateStatus allows administrators only.
func CanUpdateStatus(id Identity) Decision {
	if !id.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if id.Principal.Role != domain.RoleAdmin {
		return deny(ReasonNotAdmin)
	}
	return allow()
}

// CanDeleteReport allows administrators, and the report's author when the
// report carries an author reference. A report with no author (legacy or
// anonymous) is deletable by administrators only: an absent owner never
// implicitly grants the caller ownership.
func CanDeleteReport(id Identity, report *domain.Report) Decision {
	if !id.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if id.Principal.Role == domain.RoleAdmin {
		return allow()
	}
	if report.AuthorID == nil {
		return deny(ReasonNotOwner)
	}
	if *report.AuthorID != id.Principal.ID {
		return deny(ReasonNotOwner)
	}
	return allow()
}
