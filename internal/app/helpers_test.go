package service_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/scout/internal/app"
	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/roles"
)

func testRoles() []roles.Definition {
	return []roles.Definition{
		{
			ID: "in-striker-poacher", Name: "Poacher", Category: "Striker", Phase: roles.PhaseInPossession,
			Weights: map[string]float64{"Finishing": 3, "Pace": 2},
		},
		{
			ID: "in-striker-target-forward", Name: "Target Forward", Category: "Striker", Phase: roles.PhaseInPossession,
			Weights: map[string]float64{"Heading": 3, "Strength": 2},
		},
		{
			ID: "in-center-back-ball-player", Name: "Ball Player", Category: "Center Back", Phase: roles.PhaseInPossession,
			Weights: map[string]float64{"Passing": 3},
		},
		{
			ID: "out-center-back-stopper", Name: "Stopper", Category: "Center Back", Phase: roles.PhaseOutPossession,
			Weights: map[string]float64{"Tackling": 3, "Bravery": 2},
		},
	}
}

// testRoster holds Kai (all 15), Ana (all 10 but Finishing 20) and a player
// without a snapshot.
func testRoster() []model.Player {
	ana := attributes.Uniform(10, false)
	ana.Technical.Finishing = 20
	ana.Personality = "Model Citizen"
	ana.PlayingTime = "Regular Starter"
	return []model.Player{
		{Name: "Kai", Snapshot: attributes.Uniform(15, false)},
		{Name: "Ana", Snapshot: ana},
		{Name: "Unscouted"},
	}
}

// newTestService wires a service over file stores in a temp dir. It is not
// started.
func newTestService(t *testing.T) *service.Service {
	t.Helper()
	dir := t.TempDir()

	raw, err := json.Marshal(testRoles())
	if err != nil {
		t.Fatalf("marshal roles: %v", err)
	}
	baseline := filepath.Join(dir, "roles.json")
	if err := os.WriteFile(baseline, raw, 0o600); err != nil {
		t.Fatalf("write baseline: %v", err)
	}

	roleStore, err := repository.NewFileRoleStore(baseline, filepath.Join(dir, "local"))
	if err != nil {
		t.Fatalf("role store: %v", err)
	}
	players, err := repository.NewRosterStore(filepath.Join(dir, "local"))
	if err != nil {
		t.Fatalf("roster store: %v", err)
	}
	tags, err := repository.NewFileTagStore(filepath.Join(dir, "local"))
	if err != nil {
		t.Fatalf("tag store: %v", err)
	}
	positions, err := repository.NewFilePositionStore(filepath.Join(dir, "local"))
	if err != nil {
		t.Fatalf("position store: %v", err)
	}
	tactics, err := repository.NewFileTacticStore(filepath.Join(dir, "local"))
	if err != nil {
		t.Fatalf("tactic store: %v", err)
	}
	return service.New(
		service.WithWorkerCount(2),
		service.WithRoleStore(roleStore),
		service.WithPlayerStore(players),
		service.WithTagStore(tags),
		service.WithPositionStore(positions),
		service.WithTacticStore(tactics),
	)
}
