// Package access holds the authorization predicate. Handlers fetch an
// entity first and then ask this package whether the requesting actor may
// touch it, so the rules stay testable without a database
package access

import (
	"time"

	"stashbox/drive-api/model"
)

type Action int

const (
	ActionRead Action = iota
	ActionWrite
	ActionDelete
	ActionShare
)

// Actor is the resolved identity of a request. Either an authenticated
// user or the anonymous visitor
type Actor struct {
	UserID    string
	Anonymous bool
}

func Anonymous() Actor {
	return Actor{Anonymous: true}
}

func User(id string) Actor {
	return Actor{UserID: id}
}

// CanAccessFile reports whether a may perform act on f at time now.
// Owners may do anything. Anonymous visitors may only read files that are
// sharable and whose share window, if one is set, hasn't passed. Other
// authenticated users get nothing, a share link is the only way in
func CanAccessFile(a Actor, f *model.File, act Action, now time.Time) bool {
	if f == nil {
		return false
	}

	if !a.Anonymous && a.UserID == f.UserID {
		return true
	}

	if act != ActionRead || !a.Anonymous {
		return false
	}

	if !f.Sharable {
		return false
	}

	return f.SharableUntil == nil || !now.After(*f.SharableUntil)
}

// CanAccessFolder reports whether a may perform act on f. Folders are
// never shared, only the owner gets in
func CanAccessFolder(a Actor, f *model.Folder, act Action) bool {
	if f == nil || a.Anonymous {
		return false
	}

	return a.UserID == f.UserID
}
