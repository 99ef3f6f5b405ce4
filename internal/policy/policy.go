package policy

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"
)

// ErrDenied is returned for every denied decision. Callers translate it to a
// 403 at the HTTP boundary.
var ErrDenied = errors.New("permission denied")

// Action enumerates every permission-gated operation in one place, so no
// handler or service re-implements its own role check.
type Action string

const (
	ActionVideoEdit       Action = "video:edit"
	ActionVideoSoftDelete Action = "video:soft_delete"
	ActionVideoPurge      Action = "video:purge"
	ActionCommentEdit     Action = "comment:edit"
	ActionCommentDelete   Action = "comment:delete"
	ActionReportReview    Action = "report:review"
	ActionUserBan         Action = "user:ban"
	ActionUserEdit        Action = "user:edit"
)

// Resource carries the ownership facts a decision needs. Zero values mean
// "not applicable".
type Resource struct {
	OwnerID      int64 // owner of the target entity (video author, comment author, profile)
	VideoOwnerID int64 // owner of the hosting video, for comment decisions
}

// Authorize decides whether actor may perform action on resource. Banned
// accounts are denied everything.
func Authorize(actor *model.User, action Action, res Resource) error {
	if actor == nil || actor.IsBanned {
		return ErrDenied
	}

	switch action {
	case ActionVideoEdit, ActionVideoSoftDelete:
		// Owner-only. A moderator removing content goes through the purge
		// path, not soft delete.
		if actor.ID == res.OwnerID {
			return nil
		}

	case ActionVideoPurge, ActionReportReview:
		if actor.IsStaff() {
			return nil
		}

	case ActionUserBan:
		if actor.Role == model.RoleAdmin {
			return nil
		}

	case ActionCommentEdit:
		if actor.ID == res.OwnerID {
			return nil
		}

	case ActionCommentDelete:
		// Author, hosting video's owner, or staff.
		if actor.ID == res.OwnerID || actor.ID == res.VideoOwnerID || actor.IsStaff() {
			return nil
		}

	case ActionUserEdit:
		if actor.ID == res.OwnerID || actor.Role == model.RoleAdmin {
			return nil
		}
	}

	return ErrDenied
}
