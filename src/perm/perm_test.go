package perm

import (
	"testing"

	"git.teamcore.network/tcn/tcn/src/models"
	"github.com/stretchr/testify/assert"
)

func makeUser(id int, role string) *models.User {
	return &models.User{
		ID:   id,
		Role: &models.Role{Name: role},
	}
}

func TestCheck(t *testing.T) {
	member := makeUser(1, models.RoleMember)
	moderator := makeUser(3, models.RoleModerator)
	admin := makeUser(4, models.RoleAdmin)

	modActions := []Action{
		ActionManageUsers, ActionManageRoles, ActionManageCategories,
		ActionCreateWikiPage, ActionEditWikiPage, ActionDeleteWikiPage,
		ActionDeleteThread,
	}
	for _, action := range modActions {
		assert.False(t, Check(nil, action, nil))
		assert.False(t, Check(member, action, nil))
		assert.True(t, Check(moderator, action, nil))
		assert.True(t, Check(admin, action, nil))
	}

	for _, action := range []Action{ActionCreateThread, ActionReply} {
		assert.False(t, Check(nil, action, nil))
		assert.True(t, Check(member, action, nil))
		assert.True(t, Check(moderator, action, nil))
	}

	assert.True(t, Check(nil, ActionSubmitTicket, nil))
	assert.True(t, Check(member, ActionSubmitTicket, nil))
}

func TestPostAuthorship(t *testing.T) {
	member := makeUser(1, models.RoleMember)
	otherMember := makeUser(2, models.RoleMember)
	moderator := makeUser(3, models.RoleModerator)

	ownPost := &models.Post{ID: 10, AuthorID: &member.ID}
	orphanPost := &models.Post{ID: 11, AuthorID: nil}

	for _, action := range []Action{ActionEditPost, ActionDeletePost} {
		assert.True(t, Check(member, action, ownPost))
		assert.False(t, Check(otherMember, action, ownPost))
		assert.True(t, Check(moderator, action, ownPost))
		assert.False(t, Check(nil, action, ownPost))

		// posts whose author was deleted are moderator-only
		assert.False(t, Check(member, action, orphanPost))
		assert.True(t, Check(moderator, action, orphanPost))

		// missing target always denies
		assert.False(t, Check(moderator, action, nil))
	}
}

func TestRoleNamesAreCaseInsensitive(t *testing.T) {
	assert.True(t, makeUser(1, "moderator").IsModerator())
	assert.True(t, makeUser(1, "ADMIN").IsModerator())
	assert.True(t, makeUser(1, "ADMIN").IsAdmin())
	assert.False(t, makeUser(1, "member").IsModerator())
	assert.False(t, (&models.User{ID: 1}).IsModerator())
}
