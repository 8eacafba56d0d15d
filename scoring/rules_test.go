package scoring

import (
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volleyballRules() models.MatchRules {
	return models.MatchRules{FirstTo: 21, WinBy: 2, Cap: 30, BestOf: 3}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		rules   models.MatchRules
		wantErr bool
	}{
		{"valid volleyball", volleyballRules(), false},
		{"valid single set", models.MatchRules{FirstTo: 11, WinBy: 1, Cap: 11, BestOf: 1}, false},
		{"zero first_to", models.MatchRules{FirstTo: 0, WinBy: 2, Cap: 30, BestOf: 3}, true},
		{"zero win_by", models.MatchRules{FirstTo: 21, WinBy: 0, Cap: 30, BestOf: 3}, true},
		{"cap below first_to", models.MatchRules{FirstTo: 21, WinBy: 2, Cap: 20, BestOf: 3}, true},
		{"even best_of", models.MatchRules{FirstTo: 21, WinBy: 2, Cap: 30, BestOf: 2}, true},
		{"negative best_of", models.MatchRules{FirstTo: 21, WinBy: 2, Cap: 30, BestOf: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules(tt.rules)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRules)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSet(t *testing.T) {
	rules := volleyballRules()

	tests := []struct {
		name       string
		score1     int
		score2     int
		wantWinner models.Slot
		wantErr    error
	}{
		{"regular win", 21, 19, models.SlotTeam1, nil},
		{"regular win other side", 17, 21, models.SlotTeam2, nil},
		{"margin of one below cap", 21, 20, "", ErrWinByNotMet},
		{"deuce continues", 22, 21, "", ErrWinByNotMet},
		{"deuce resolved", 25, 23, models.SlotTeam1, nil},
		{"cap win by one", 30, 29, models.SlotTeam1, nil},
		{"cap win by one other side", 29, 30, models.SlotTeam2, nil},
		{"cap with margin of two", 30, 28, "", ErrCapWinByOne},
		{"past the cap", 31, 29, "", ErrScoreExceedsCap},
		{"tie", 21, 21, "", ErrWinByNotMet},
		{"tie at cap", 30, 30, "", ErrCapWinByOne},
		{"incomplete", 15, 10, "", ErrSetIncomplete},
		{"zero zero", 0, 0, "", ErrSetIncomplete},
		{"negative score", -1, 21, "", ErrNegativeScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, err := ValidateSet(tt.score1, tt.score2, rules)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWinner, winner)
		})
	}
}

func TestValidateSetWinByOne(t *testing.T) {
	rules := models.MatchRules{FirstTo: 15, WinBy: 1, Cap: 15, BestOf: 1}

	winner, err := ValidateSet(15, 14, rules)
	require.NoError(t, err)
	assert.Equal(t, models.SlotTeam1, winner)

	// Ties stay invalid even with win_by 1.
	_, err = ValidateSet(14, 14, rules)
	assert.Error(t, err)
}

func TestMatchWinner(t *testing.T) {
	rules := volleyballRules() // best of 3, need 2

	winner, decided := MatchWinner(2, 0, rules)
	assert.True(t, decided)
	assert.Equal(t, models.SlotTeam1, winner)

	winner, decided = MatchWinner(1, 2, rules)
	assert.True(t, decided)
	assert.Equal(t, models.SlotTeam2, winner)

	_, decided = MatchWinner(1, 1, rules)
	assert.False(t, decided)

	_, decided = MatchWinner(0, 0, rules)
	assert.False(t, decided)
}

func TestSetsToWin(t *testing.T) {
	assert.Equal(t, 1, models.MatchRules{BestOf: 1}.SetsToWin())
	assert.Equal(t, 2, models.MatchRules{BestOf: 3}.SetsToWin())
	assert.Equal(t, 3, models.MatchRules{BestOf: 5}.SetsToWin())
}
