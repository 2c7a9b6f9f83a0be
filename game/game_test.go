package game

import (
	"errors"
	"testing"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/scores"
)

const maxTestFrames = 20000

func TestHeadlessRunVisitsEveryPhase(t *testing.T) {
	local := memNamespace{}
	g, err := NewGame(Options{
		Config:    config.Cfg().Clone(),
		Seed:      42,
		Autopilot: true,
		Runs:      1,
		Local:     local,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	frames := 0
	for !g.Finished() && frames < maxTestFrames {
		g.Frame(g.cfg.Derived.Tick)
		frames++
	}
	if !g.Finished() {
		t.Fatalf("run not finished after %d frames, mode %s", frames, g.Mode())
	}

	m := g.machine
	for _, id := range []ModeID{ModeLoading, ModeIntro, ModeManage, ModeEncounter, ModeScores} {
		if m.Entered(id) == 0 {
			t.Errorf("mode %s never entered", id)
		}
	}
	if ends := m.Entered(ModeWin) + m.Entered(ModeLose); ends != 1 {
		t.Errorf("run ended %d times, want 1", ends)
	}
	if m.Entered(ModeEncounter) != len(g.Results()) {
		t.Errorf("encounters = %d, results = %d", m.Entered(ModeEncounter), len(g.Results()))
	}
	if g.LastScore().Level > len(g.cfg.Chapters) {
		t.Errorf("level %d beyond the campaign", g.LastScore().Level)
	}
	if local["runs"] != "1" {
		t.Errorf("local runs = %q, want 1", local["runs"])
	}
}

func TestMaxChaptersEndsCampaign(t *testing.T) {
	res := RunHeadless(RunSpec{Config: config.Cfg().Clone(), Seed: 7, MaxChapters: 1, MaxFrames: maxTestFrames})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if len(res.Encounters) != 1 {
		t.Fatalf("encounters = %d, want 1", len(res.Encounters))
	}
	if res.Won != (res.Score.Level == 1) {
		t.Errorf("won = %v with level %d", res.Won, res.Score.Level)
	}
}

func TestRunBatchIsDeterministic(t *testing.T) {
	cfg := config.Cfg().Clone()
	specs := []RunSpec{
		{Config: cfg, Seed: 1, MaxChapters: 2, MaxFrames: maxTestFrames},
		{Config: cfg, Seed: 2, MaxChapters: 2, MaxFrames: maxTestFrames},
		{Config: cfg, Seed: 1, MaxChapters: 2, MaxFrames: maxTestFrames},
	}
	results := RunBatch(specs, 2)
	if len(results) != len(specs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("run %d: %v", i, r.Err)
		}
		if r.Seed != specs[i].Seed {
			t.Errorf("result %d seed = %d, want %d", i, r.Seed, specs[i].Seed)
		}
	}
	if results[0].Score != results[2].Score || results[0].Frames != results[2].Frames {
		t.Errorf("same seed diverged: %+v vs %+v", results[0], results[2])
	}
}

type failingStore struct {
	fails int
	calls int
}

func (s *failingStore) Submit(string, scores.Score) *scores.Request { return s.next() }
func (s *failingStore) Fetch(string) *scores.Request                { return s.next() }

func (s *failingStore) next() *scores.Request {
	s.calls++
	if s.calls <= s.fails {
		return scores.Done(nil, errors.New("offline"))
	}
	return scores.Done(nil, nil)
}

func TestScoreRequestsRetry(t *testing.T) {
	store := &failingStore{fails: 1}
	g, err := NewGame(Options{
		Config:      config.Cfg().Clone(),
		Seed:        3,
		Autopilot:   true,
		MaxChapters: 1,
		Runs:        1,
		Scores:      store,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	for frames := 0; !g.Finished() && frames < maxTestFrames; frames++ {
		g.Frame(g.cfg.Derived.Tick)
	}
	if !g.Finished() {
		t.Fatalf("stuck in %s", g.Mode())
	}
	// submit fails, retry succeeds, then one fetch
	if store.calls != 3 {
		t.Errorf("store calls = %d, want 3", store.calls)
	}
}

type countingAssets struct{ pending int }

func (a *countingAssets) Pending() int {
	if a.pending > 0 {
		a.pending--
	}
	return a.pending
}
func (a *countingAssets) Err() error { return nil }

func TestLoadingWaitsForAssets(t *testing.T) {
	g, err := NewGame(Options{
		Config: config.Cfg().Clone(),
		Seed:   1,
		Assets: &countingAssets{pending: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	for i := 0; i < 2; i++ {
		g.Frame(g.cfg.Derived.Tick)
		if g.Mode() != ModeLoading {
			t.Fatalf("frame %d: mode %s, want loading", i, g.Mode())
		}
	}
	g.Frame(g.cfg.Derived.Tick)
	if g.Mode() != ModeIntro {
		t.Fatalf("mode %s, want intro", g.Mode())
	}
	// Without input the intro waits for a click.
	g.Frame(g.cfg.Derived.Tick)
	if g.Mode() != ModeIntro {
		t.Errorf("mode %s, want intro", g.Mode())
	}
}
