package filters

import (
	"sort"

	"fieldops/internal/domain"
)

// Selections is the current state of the filter funnel. A nil TeamLeaderID
// means "ALL". The chain is strictly one-directional: team leader → users →
// stores → branches → dates.
type Selections struct {
	TeamLeaderID *int64  `json:"team_leader_id"`
	UserIDs      []int64 `json:"user_ids"`
	Store        string  `json:"store"`
	Branch       string  `json:"branch"`
	Date         string  `json:"date"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UserOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Options holds the derived option set for every funnel level.
type Options struct {
	TeamLeaders []UserOption `json:"team_leaders"`
	Users       []UserOption `json:"users"`
	Stores      []string     `json:"stores"`
	Branches    []string     `json:"branches"`
	Dates       []string     `json:"dates"`
}

// Normalize clears every selection downstream of the first one that changed.
// A new team leader wipes users, store, branch and date even when the new
// leader shares an id with a previously selected user.
func Normalize(prev, next Selections) Selections {
	if !sameLeader(prev.TeamLeaderID, next.TeamLeaderID) {
		return Selections{TeamLeaderID: next.TeamLeaderID}
	}
	if !sameIDs(prev.UserIDs, next.UserIDs) {
		return Selections{TeamLeaderID: next.TeamLeaderID, UserIDs: next.UserIDs}
	}
	if prev.Store != next.Store {
		return Selections{TeamLeaderID: next.TeamLeaderID, UserIDs: next.UserIDs, Store: next.Store}
	}
	if prev.Branch != next.Branch {
		return Selections{TeamLeaderID: next.TeamLeaderID, UserIDs: next.UserIDs, Store: next.Store, Branch: next.Branch}
	}
	return next
}

func sameLeader(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Derive builds the option set for each level from the already-fetched
// working set, each level filtered only by the selections above it. No new
// queries, no back-propagation.
func Derive(users []domain.User, visits []domain.VisitSnapshot, sel Selections) Options {
	var opts Options

	for _, u := range users {
		if u.Role == domain.RoleTeamLeader {
			opts.TeamLeaders = append(opts.TeamLeaders, UserOption{ID: u.ID, Name: u.Name})
		}
	}

	// Users: restricted to the leader's reports, or everyone on "ALL".
	selectedUsers := make(map[int64]bool)
	for _, u := range users {
		if sel.TeamLeaderID != nil {
			inTeam := u.ID == *sel.TeamLeaderID ||
				(u.TeamLeaderID != nil && *u.TeamLeaderID == *sel.TeamLeaderID)
			if !inTeam {
				continue
			}
		}
		opts.Users = append(opts.Users, UserOption{ID: u.ID, Name: u.Name})
		selectedUsers[u.ID] = true
	}

	// Narrow to the explicitly picked users when there are any.
	if len(sel.UserIDs) > 0 {
		picked := make(map[int64]bool)
		for _, id := range sel.UserIDs {
			if selectedUsers[id] {
				picked[id] = true
			}
		}
		selectedUsers = picked
	}

	// Stores from visits belonging to the selected users.
	storeSet := make(map[string]bool)
	for _, v := range visits {
		if !selectedUsers[v.UserID] {
			continue
		}
		if v.Store != "" && !storeSet[v.Store] {
			storeSet[v.Store] = true
			opts.Stores = append(opts.Stores, v.Store)
		}
	}
	sort.Strings(opts.Stores)

	// Branches within the selected store.
	if sel.Store != "" {
		branchSet := make(map[string]bool)
		for _, v := range visits {
			if !selectedUsers[v.UserID] || v.Store != sel.Store {
				continue
			}
			if v.Branch != "" && !branchSet[v.Branch] {
				branchSet[v.Branch] = true
				opts.Branches = append(opts.Branches, v.Branch)
			}
		}
		sort.Strings(opts.Branches)
	}

	// Dates with at least one snapshot for the selected branch.
	if sel.Store != "" && sel.Branch != "" {
		dateSet := make(map[string]bool)
		for _, v := range visits {
			if !selectedUsers[v.UserID] || v.Store != sel.Store || v.Branch != sel.Branch {
				continue
			}
			if v.VisitDate != "" && !dateSet[v.VisitDate] {
				dateSet[v.VisitDate] = true
				opts.Dates = append(opts.Dates, v.VisitDate)
			}
		}
		sort.Strings(opts.Dates)
	}

	return opts
}
