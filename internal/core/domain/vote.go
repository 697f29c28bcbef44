package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	VoteDown    = -1
	VoteRetract = 0
	VoteUp      = 1
)

type ModuleVote struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ModuleID  string    `json:"module_id" db:"module_id"`
	Value     int       `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewModuleVote(userID, moduleID string, value int) (*ModuleVote, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(moduleID) == "" {
		return nil, ErrInvalidModuleID
	}
	if value != VoteUp && value != VoteDown {
		return nil, ErrInvalidVote
	}

	now := time.Now().UTC()
	return &ModuleVote{
		ID:        uuid.NewString(),
		UserID:    userID,
		ModuleID:  strings.TrimSpace(moduleID),
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type VoteTally struct {
	ModuleID  string `json:"moduleId"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Score     int    `json:"score"`
	UserVote  int    `json:"userVote"`
}

// TallyVotes sums the votes cast on moduleID; userVote is the value cast by userID, 0 if none.
func TallyVotes(moduleID, userID string, votes []ModuleVote) VoteTally {
	tally := VoteTally{ModuleID: moduleID}

	for _, v := range votes {
		if v.ModuleID != moduleID {
			continue
		}
		switch v.Value {
		case VoteUp:
			tally.Upvotes++
		case VoteDown:
			tally.Downvotes++
		default:
			continue
		}
		if v.UserID == userID {
			tally.UserVote = v.Value
		}
	}

	tally.Score = tally.Upvotes - tally.Downvotes
	return tally
}
