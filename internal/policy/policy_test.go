package policy

import (
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"github.com/stretchr/testify/assert"
)

func user(id int64, role string) *model.User {
	return &model.User{ID: id, Role: role}
}

func TestAuthorize(t *testing.T) {
	banned := user(9, model.RoleAdmin)
	banned.IsBanned = true

	tests := []struct {
		name    string
		actor   *model.User
		action  Action
		res     Resource
		allowed bool
	}{
		{"nil actor denied", nil, ActionVideoEdit, Resource{}, false},
		{"banned admin denied everything", banned, ActionVideoPurge, Resource{}, false},

		{"owner edits video", user(1, model.RoleUser), ActionVideoEdit, Resource{OwnerID: 1}, true},
		{"stranger cannot edit video", user(2, model.RoleUser), ActionVideoEdit, Resource{OwnerID: 1}, false},
		{"admin cannot soft delete others video", user(3, model.RoleAdmin), ActionVideoSoftDelete, Resource{OwnerID: 1}, false},
		{"owner soft deletes", user(1, model.RoleUser), ActionVideoSoftDelete, Resource{OwnerID: 1}, true},

		{"moderator purges", user(3, model.RoleModerator), ActionVideoPurge, Resource{}, true},
		{"admin purges", user(3, model.RoleAdmin), ActionVideoPurge, Resource{}, true},
		{"user cannot purge own video", user(1, model.RoleUser), ActionVideoPurge, Resource{OwnerID: 1}, false},

		{"moderator reviews reports", user(3, model.RoleModerator), ActionReportReview, Resource{}, true},
		{"user cannot review reports", user(1, model.RoleUser), ActionReportReview, Resource{}, false},

		{"admin bans", user(3, model.RoleAdmin), ActionUserBan, Resource{OwnerID: 1}, true},
		{"moderator cannot ban", user(3, model.RoleModerator), ActionUserBan, Resource{OwnerID: 1}, false},

		{"author edits own comment", user(1, model.RoleUser), ActionCommentEdit, Resource{OwnerID: 1}, true},
		{"moderator cannot edit others comment", user(3, model.RoleModerator), ActionCommentEdit, Resource{OwnerID: 1}, false},

		{"author deletes own comment", user(1, model.RoleUser), ActionCommentDelete, Resource{OwnerID: 1}, true},
		{"video owner deletes comment", user(2, model.RoleUser), ActionCommentDelete, Resource{OwnerID: 1, VideoOwnerID: 2}, true},
		{"moderator deletes comment", user(3, model.RoleModerator), ActionCommentDelete, Resource{OwnerID: 1}, true},
		{"stranger cannot delete comment", user(4, model.RoleUser), ActionCommentDelete, Resource{OwnerID: 1, VideoOwnerID: 2}, false},

		{"self edits profile", user(1, model.RoleUser), ActionUserEdit, Resource{OwnerID: 1}, true},
		{"admin edits any profile", user(3, model.RoleAdmin), ActionUserEdit, Resource{OwnerID: 1}, true},
		{"moderator cannot edit others profile", user(3, model.RoleModerator), ActionUserEdit, Resource{OwnerID: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.res)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDenied)
			}
		})
	}
}
