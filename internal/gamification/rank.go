package gamification

// Rank is one tier of the ladder with its lifetime-XP threshold.
type Rank struct {
	Key  string
	Name string
	XP   int
}

// Ranks is the ordered tier ladder. Above the final tier ("Apex") progress
// continues as stars, one per ApexStarStep XP.
var Ranks = []Rank{
	{Key: "starter", Name: "Starter", XP: 0},
	{Key: "rookie", Name: "Rookie", XP: 500},
	{Key: "grinder", Name: "Grinder", XP: 1200},
	{Key: "regular", Name: "Regular", XP: 2200},
	{Key: "builder", Name: "Builder", XP: 3500},
	{Key: "athlete", Name: "Athlete", XP: 5200},
	{Key: "warrior", Name: "Warrior", XP: 7400},
	{Key: "champion", Name: "Champion", XP: 10200},
	{Key: "elite", Name: "Elite", XP: 13800},
	{Key: "titan", Name: "Titan", XP: 18200},
	{Key: "mythic", Name: "Mythic", XP: 23800},
	{Key: "legend", Name: "Legend", XP: 30800},
	{Key: "master", Name: "Master", XP: 39600},
	{Key: "grandmaster", Name: "Grandmaster", XP: 50600},
	{Key: "immortal", Name: "Immortal", XP: 64200},
	{Key: "ascendant", Name: "Ascendant", XP: 80800},
	{Key: "paragon", Name: "Paragon", XP: 101000},
	{Key: "apex", Name: "Apex", XP: 126000},
}

const (
	apexXP       = 126000
	ApexStarStep = 5000
)

// RankInfo describes where a lifetime-XP total sits on the ladder.
// NextThreshold and NextName are zero-valued at or above Apex.
type RankInfo struct {
	Key           string
	Name          string
	Threshold     int
	NextThreshold int
	NextName      string
	Progress      float64 // fraction toward the next tier, in [0,1]
	LifetimeXP    int
	Stars         int
}

// GetRank maps lifetime XP to its rank tier. Progress toward the next tier
// is clamped to [0,1]; at or above the Apex threshold progress is fixed at 1
// and stars advance by one per ApexStarStep XP.
func GetRank(lifetimeXP int) RankInfo {
	xp := lifetimeXP
	if xp < 0 {
		xp = 0
	}

	current := Ranks[0]
	var next *Rank
	for i := range Ranks {
		if xp >= Ranks[i].XP {
			current = Ranks[i]
			if i+1 < len(Ranks) {
				next = &Ranks[i+1]
			} else {
				next = nil
			}
		} else {
			break
		}
	}

	info := RankInfo{
		Key:        current.Key,
		Name:       current.Name,
		Threshold:  current.XP,
		LifetimeXP: xp,
	}

	if xp >= apexXP {
		info.Stars = (xp - apexXP) / ApexStarStep
		info.Progress = 1
		return info
	}

	if next != nil {
		info.NextThreshold = next.XP
		info.NextName = next.Name
		span := next.XP - current.XP
		if span < 1 {
			span = 1
		}
		p := float64(xp-current.XP) / float64(span)
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		info.Progress = p
	} else {
		info.Progress = 1
	}
	return info
}
