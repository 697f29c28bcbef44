package domain

import "time"

type UserStats struct {
	TotalModulesStarted    int `json:"totalModulesStarted"`
	TotalModulesCompleted  int `json:"totalModulesCompleted"`
	TotalContentsCompleted int `json:"totalContentsCompleted"`
	TotalTracksStarted     int `json:"totalTracksStarted"`
	TotalTracksCompleted   int `json:"totalTracksCompleted"`
	Streak                 int `json:"streak"`
	LongestStreak          int `json:"longestStreak"`
}

// ComputeUserStats builds the dashboard summary. A progress record counts as
// completed only when its CompletedAt is set.
func ComputeUserStats(
	moduleRecords []ModuleProgressRecord,
	completedContentCount int,
	trackRecords []TrackProgressRecord,
	loginDates []time.Time,
	today time.Time,
) UserStats {
	stats := UserStats{
		TotalModulesStarted:    len(moduleRecords),
		TotalContentsCompleted: completedContentCount,
		TotalTracksStarted:     len(trackRecords),
		Streak:                 ComputeStreak(loginDates, today),
		LongestStreak:          ComputeLongestStreak(loginDates),
	}

	for _, r := range moduleRecords {
		if r.IsCompleted() {
			stats.TotalModulesCompleted++
		}
	}

	for _, r := range trackRecords {
		if r.IsCompleted() {
			stats.TotalTracksCompleted++
		}
	}

	return stats
}

// StreakSummary is the answer to "how is my streak going".
type StreakSummary struct {
	Day           string `json:"day,omitempty"`
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longestStreak"`
}

func NewStreakSummary(loginDates []time.Time, today time.Time) StreakSummary {
	return StreakSummary{
		Streak:        ComputeStreak(loginDates, today),
		LongestStreak: ComputeLongestStreak(loginDates),
	}
}
