/*
Package perm is the authorization policy for the site: pure decision functions
mapping (actor, action, target) to allow/deny. It never touches the database;
callers must fetch the actor (with its role) and the target beforehand, and
must consult this package before every mutating operation.
*/
package perm

import "git.teamcore.network/tcn/tcn/src/models"

type Action int

const (
	// Moderator/Admin only
	ActionManageUsers Action = iota + 1
	ActionManageRoles
	ActionManageCategories
	ActionCreateWikiPage
	ActionEditWikiPage
	ActionDeleteWikiPage
	ActionDeleteThread

	// Any authenticated user
	ActionCreateThread
	ActionReply
	ActionSubmitTicket

	// Author or Moderator/Admin; target must be a *models.Post
	ActionEditPost
	ActionDeletePost
)

/*
Decides whether an actor may perform an action. The actor may be nil
(anonymous). The target is only consulted for the actions that need one
(currently post editing and deletion, which take a *models.Post); pass nil
otherwise.
*/
func Check(actor *models.User, action Action, target any) bool {
	switch action {
	case ActionManageUsers,
		ActionManageRoles,
		ActionManageCategories,
		ActionCreateWikiPage,
		ActionEditWikiPage,
		ActionDeleteWikiPage,
		ActionDeleteThread:
		return actor != nil && actor.IsModerator()

	case ActionCreateThread, ActionReply:
		return actor != nil

	case ActionSubmitTicket:
		// The support form works for anonymous visitors too.
		return true

	case ActionEditPost, ActionDeletePost:
		post, ok := target.(*models.Post)
		if !ok || actor == nil {
			return false
		}
		return CanModifyPost(actor, post)
	}

	return false
}

// The post authorship rule: you may touch a post if you wrote it or if you
// moderate the forum.
func CanModifyPost(actor *models.User, post *models.Post) bool {
	if actor == nil {
		return false
	}
	if actor.IsModerator() {
		return true
	}
	return post.AuthorID != nil && *post.AuthorID == actor.ID
}
