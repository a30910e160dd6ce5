package hooks

import (
	"context"
	"errors"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
)

// Packages adjusts the installed package set of the target root.
func Packages(ctx context.Context, d Deps) error {
	facts, err := actions.ReadFacts(d.Store, d.Log)
	if err != nil {
		if errors.Is(err, actions.ErrNoRoot) {
			return &Failure{Message: MsgNoInstallPath}
		}
		return err
	}

	d.Log.Debug().Str("root", facts.Root).Msg("Adjusting target packages")
	actions.New(d.Runner, facts.Root, d.Actions, d.Log).Run(ctx, facts, d.OnEvent)
	return nil
}
