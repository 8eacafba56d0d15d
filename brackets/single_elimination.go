package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
)

var (
	ErrInsufficientTeams        = errors.New("a bracket requires at least two teams")
	ErrUnsatisfiableBracketSize = errors.New("team count cannot be reduced to a full bracket by a play-in round")
)

// SingleElimination builds the match graph for a knockout stage.
//
// Rounds are numbered from the final outwards: round 1 is the final,
// round 2 the semi-finals and so on. For N teams the bracket has
// ceil(log2(N)) rounds; when N is not a power of two the earliest round
// is a play-in of exactly N - 2^(rounds-1) matches, so that after it the
// first regular round is filled exactly. Top seeds not drawn into the
// play-in receive a bye straight into the first regular round.
//
// Every match's successor pointer and destination slot are fixed here,
// once. Advancement never recomputes them.
type SingleElimination struct{}

func NewSingleElimination() Generator {
	return &SingleElimination{}
}

func (g *SingleElimination) Name() string {
	return "SingleElimination"
}

func (g *SingleElimination) Build(_ context.Context, params BuildParams) ([]*models.Match, error) {
	teams := params.Teams
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientTeams, n)
	}

	rounds := ceilLog2(n)
	full := 1 << rounds

	playIn := 0
	lastRegular := rounds
	if n < full {
		playIn = n - full/2
		lastRegular = rounds - 1
	}
	if playIn < 0 || playIn > 1<<lastRegular {
		return nil, fmt.Errorf("%w: %d teams, play-in of %d", ErrUnsatisfiableBracketSize, n, playIn)
	}

	// Entry slots of the first regular round; filled by byes and play-in
	// winners.
	entrySlots := 1 << lastRegular
	byes := entrySlots - playIn

	matches := make([]*models.Match, 0, n-1)
	index := make(map[string]*models.Match, n-1)
	number := 0

	create := func(round, position int) *models.Match {
		number++
		m := &models.Match{
			ID:           matchID(params.StageID, round, position),
			TournamentID: params.TournamentID,
			Round:        round,
			MatchNumber:  number,
			Status:       models.MatchStatusUpcoming,
		}
		matches = append(matches, m)
		index[m.ID] = m
		return m
	}

	// Allocate in play order so MatchNumber is stable and reproducible:
	// play-in first, then each regular round from earliest to the final.
	if playIn > 0 {
		for p := 1; p <= playIn; p++ {
			m := create(rounds, p)
			m.SetTeamInSlot(models.SlotTeam1, teams[byes+p-1])
			m.SetTeamInSlot(models.SlotTeam2, teams[n-p])
		}
	}
	for r := lastRegular; r >= 1; r-- {
		for p := 1; p <= 1<<(r-1); p++ {
			create(r, p)
		}
	}

	// Wire regular rounds: predecessors (r, 2k-1) and (r, 2k) feed the
	// two slots of (r-1, k).
	for r := lastRegular; r >= 2; r-- {
		for p := 1; p <= 1<<(r-1); p++ {
			m := index[matchID(params.StageID, r, p)]
			next := index[matchID(params.StageID, r-1, (p+1)/2)]
			slot := models.SlotTeam1
			if p%2 == 0 {
				slot = models.SlotTeam2
			}
			m.NextMatchID = &next.ID
			m.DestinationSlot = &slot
		}
	}

	// Place seeds into the first regular round. Virtual seeds above the
	// bye count stand for play-in winners: seed byes+k is whoever wins
	// play-in match k.
	for i, seed := range bracketOrder(entrySlots) {
		m := index[matchID(params.StageID, lastRegular, i/2+1)]
		slot := models.SlotTeam1
		if i%2 == 1 {
			slot = models.SlotTeam2
		}
		if seed <= byes {
			m.SetTeamInSlot(slot, teams[seed-1])
			continue
		}
		pi := index[matchID(params.StageID, rounds, seed-byes)]
		pi.NextMatchID = &m.ID
		pi.DestinationSlot = &slot
	}

	g.completeByes(matches, index)

	if err := validateWiring(matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// completeByes marks matches with a contender but no opponent and no
// match feeding the empty slot as already won, and pushes the winner
// forward so the next round needs no operator action. With ceil-log2
// sizing every slot is fed, so this is a safety net for degenerate
// layouts rather than the normal path.
func (g *SingleElimination) completeByes(matches []*models.Match, index map[string]*models.Match) {
	fed := make(map[string]map[models.Slot]bool)
	for _, m := range matches {
		if m.NextMatchID == nil || m.DestinationSlot == nil {
			continue
		}
		if fed[*m.NextMatchID] == nil {
			fed[*m.NextMatchID] = make(map[models.Slot]bool)
		}
		fed[*m.NextMatchID][*m.DestinationSlot] = true
	}

	// matches is in play order, so walking it front to back lets a bye
	// cascade into later rounds within one pass.
	for _, m := range matches {
		var winner *string
		switch {
		case m.Team1 != nil && m.Team2 == nil && !fed[m.ID][models.SlotTeam2]:
			winner = m.Team1
		case m.Team2 != nil && m.Team1 == nil && !fed[m.ID][models.SlotTeam1]:
			winner = m.Team2
		default:
			continue
		}

		m.Winner = winner
		m.Status = models.MatchStatusCompleted
		if m.NextMatchID != nil && m.DestinationSlot != nil {
			if next, ok := index[*m.NextMatchID]; ok {
				next.SetTeamInSlot(*m.DestinationSlot, *winner)
			}
		}
	}
}

// validateWiring enforces the structural invariants before anything is
// handed to the caller: exactly one final, every other match feeding
// exactly one successor slot, no slot claimed twice.
func validateWiring(matches []*models.Match) error {
	finals := 0
	claimed := make(map[string]bool, len(matches))
	for _, m := range matches {
		if m.NextMatchID == nil {
			if m.Round != 1 {
				return fmt.Errorf("match %s in round %d has no successor", m.ID, m.Round)
			}
			finals++
			continue
		}
		if m.DestinationSlot == nil {
			return fmt.Errorf("match %s has a successor but no destination slot", m.ID)
		}
		key := *m.NextMatchID + "/" + string(*m.DestinationSlot)
		if claimed[key] {
			return fmt.Errorf("slot %s of match %s is claimed twice", *m.DestinationSlot, *m.NextMatchID)
		}
		claimed[key] = true
	}
	if finals != 1 {
		return fmt.Errorf("bracket has %d finals, want exactly 1", finals)
	}
	return nil
}

func matchID(stageID string, round, position int) string {
	return fmt.Sprintf("%s_r%d_m%d", stageID, round, position)
}

func ceilLog2(n int) int {
	r := 0
	for 1<<r < n {
		r++
	}
	return r
}
