package domain

import "time"

// StatusSnapshot is the externally readable summary of the supervised
// session. The supervisor hands out clones, never the live value.
type StatusSnapshot struct {
	Running   bool           `json:"running"`
	Connected bool           `json:"connected"`
	Platform  string         `json:"platform"`
	StartedAt *time.Time     `json:"started_at,omitempty"`
	LastError string         `json:"last_error,omitempty"`
	User      *UserInfo      `json:"user,omitempty"`
	Farm      []FarmPlotView `json:"farm,omitempty"`
	Bag       []BagEntry     `json:"bag,omitempty"`
	Visits    []VisitRecord  `json:"visits,omitempty"`
}

type UserInfo struct {
	ID       string         `json:"id"`
	Nickname string         `json:"nickname"`
	Level    int            `json:"level"`
	Exp      int64          `json:"exp"`
	Money    int64          `json:"money"`
	Progress *LevelProgress `json:"progress,omitempty"`
}

// LevelProgress is experience accumulated inside the current level bracket.
type LevelProgress struct {
	Current int64 `json:"current"`
	Needed  int64 `json:"needed"`
}

func (s StatusSnapshot) Clone() StatusSnapshot {
	out := s
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.User != nil {
		u := *s.User
		if s.User.Progress != nil {
			p := *s.User.Progress
			u.Progress = &p
		}
		out.User = &u
	}
	if s.Farm != nil {
		out.Farm = make([]FarmPlotView, len(s.Farm))
		for i, p := range s.Farm {
			out.Farm[i] = p.clone()
		}
	}
	if s.Bag != nil {
		out.Bag = make([]BagEntry, len(s.Bag))
		for i, e := range s.Bag {
			out.Bag[i] = e.clone()
		}
	}
	if s.Visits != nil {
		out.Visits = append([]VisitRecord(nil), s.Visits...)
	}
	return out
}
