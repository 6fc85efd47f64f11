// Package access decides whether a requester may perform an action on a
// resource. Decisions are pure functions of the requester, the rule table
// and, for object-level checks, the owner of the target.
package access

import (
	"context"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"
)

type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceAccount  Resource = "account"
	ResourceSelf     Resource = "self"
)

type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Audience is who a rule admits.
type Audience uint8

const (
	Nobody Audience = iota
	Anyone
	Authenticated
	// OwnerOrStaff admits the author of the object, moderators and admins.
	OwnerOrStaff
	Admin
)

type Rule struct {
	Resource Resource
	Actions  []Action
	Audience Audience
}

var (
	readActions  = []Action{ActionList, ActionRetrieve}
	writeActions = []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy}
	editActions  = []Action{ActionUpdate, ActionPartialUpdate, ActionDestroy}
)

// Rules is evaluated in order; the first rule naming the resource and action wins.
// Anything not listed is denied.
var Rules = []Rule{
	{ResourceCategory, readActions, Anyone},
	{ResourceCategory, []Action{ActionCreate, ActionDestroy}, Admin},

	{ResourceGenre, readActions, Anyone},
	{ResourceGenre, []Action{ActionCreate, ActionDestroy}, Admin},

	{ResourceTitle, readActions, Anyone},
	{ResourceTitle, writeActions, Admin},

	{ResourceReview, readActions, Anyone},
	{ResourceReview, []Action{ActionCreate}, Authenticated},
	{ResourceReview, editActions, OwnerOrStaff},

	{ResourceComment, readActions, Anyone},
	{ResourceComment, []Action{ActionCreate}, Authenticated},
	{ResourceComment, editActions, OwnerOrStaff},

	{ResourceSelf, []Action{ActionRetrieve, ActionPartialUpdate}, Authenticated},

	{ResourceAccount, append(append([]Action{}, readActions...), writeActions...), Admin},
}

// AudienceFor returns the audience of the first matching rule, or Nobody.
func AudienceFor(resource Resource, action Action) Audience {
	for _, rule := range Rules {
		if rule.Resource != resource {
			continue
		}
		for _, a := range rule.Actions {
			if a == action {
				return rule.Audience
			}
		}
	}
	return Nobody
}

// Subject is the requester as seen by the policy.
type Subject struct {
	ID            uuid.UUID
	Authenticated bool
	Role          entity.Role
	Superuser     bool
}

func Anonymous() Subject {
	return Subject{}
}

func SubjectFromUser(u *entity.User) Subject {
	return Subject{ID: u.ID, Authenticated: true, Role: u.Role, Superuser: u.IsSuperuser}
}

// SubjectFromContext reads the requester placed on ctx by the authentication middleware.
func SubjectFromContext(ctx context.Context) Subject {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Anonymous()
	}
	role, _ := utils.GetRoleFromContext(ctx)
	return Subject{
		ID:            id,
		Authenticated: true,
		Role:          entity.Role(role),
		Superuser:     utils.GetSuperuserFromContext(ctx),
	}
}

// IsAdmin holds for the admin role or the superuser flag.
func (s Subject) IsAdmin() bool {
	return s.Authenticated && (s.Superuser || s.Role.Can(entity.CapAdminister))
}

func (s Subject) IsModerator() bool {
	return s.Authenticated && s.Role.Can(entity.CapModerate)
}

type Decision uint8

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Err converts a denial into the client-facing error, or nil for Allow.
func (d Decision) Err() error {
	switch d {
	case DenyUnauthenticated:
		return apperr.Unauthenticated("Authentication credentials were not provided")
	case DenyForbidden:
		return apperr.Forbidden("You do not have permission to perform this action")
	}
	return nil
}

// CheckPermission is the collection-level check made before the target is loaded.
// Owner-scoped actions only require authentication here.
func CheckPermission(s Subject, resource Resource, action Action) Decision {
	return decide(s, AudienceFor(resource, action), nil)
}

// CheckObjectPermission re-evaluates the rule against the loaded object's owner.
func CheckObjectPermission(s Subject, resource Resource, action Action, ownerID uuid.UUID) Decision {
	return decide(s, AudienceFor(resource, action), &ownerID)
}

func decide(s Subject, audience Audience, ownerID *uuid.UUID) Decision {
	if audience == Anyone {
		return Allow
	}
	if !s.Authenticated {
		return DenyUnauthenticated
	}

	switch audience {
	case Authenticated:
		return Allow
	case Admin:
		if s.IsAdmin() {
			return Allow
		}
	case OwnerOrStaff:
		if ownerID == nil || s.IsAdmin() || s.IsModerator() || s.ID == *ownerID {
			return Allow
		}
	}
	return DenyForbidden
}
