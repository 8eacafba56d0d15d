package brackets

import (
	"context"

	"github.com/Dosada05/playoff-system/models"
)

// BuildParams carries everything a generator needs to lay out a stage.
// Teams is the seed order, seed 1 first; the stage identifier only feeds
// the deterministic match ids ({stageID}_r{round}_m{position}).
type BuildParams struct {
	StageID      string
	TournamentID int
	Teams        []string
}

type Generator interface {
	Build(ctx context.Context, params BuildParams) ([]*models.Match, error)

	Name() string
}
