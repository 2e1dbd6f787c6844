// Package session holds the active project/account pair. Exactly one session
// is live at a time: the scheduler builds one per account and threads it
// through every workflow call, so no global state is needed and no call ever
// observes a partially switched account.
package session

import "github.com/Yanu403/sunkong/internal/credential"

type Session struct {
	project string
	profile *credential.Record
}

func New(project string, profile *credential.Record) *Session {
	return &Session{project: project, profile: profile}
}

func (s *Session) Project() string { return s.project }

func (s *Session) Profile() *credential.Record { return s.profile }

func (s *Session) SetProject(name string) { s.project = name }

func (s *Session) SetProfile(rec *credential.Record) { s.profile = rec }

// Username is a convenience for log tags; empty when no profile is active.
func (s *Session) Username() string {
	if s == nil || s.profile == nil {
		return ""
	}
	return s.profile.Username
}
