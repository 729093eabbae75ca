package letters

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/field"
)

func newTestField(seed int64) (*field.Manager, *Gate) {
	cfg := config.DefaultGameConfig()
	rng := rand.New(rand.NewSource(seed))
	gate := NewGate(DefaultPool, rng)
	return field.NewManager(cfg.Field, cfg.World.Width, field.ReachFrom(cfg.Physics, config.DefaultTickRate), rng, gate), gate
}

func TestNewGatePool(t *testing.T) {
	tests := []struct {
		initial  string
		expected string
	}{
		{"ABCD", "ABCD"},
		{"abc", "ABC"},
		{"AAB1-", "AB"},
		{"", DefaultPool},
		{"123", DefaultPool},
	}

	for _, tt := range tests {
		g := NewGate(tt.initial, rand.New(rand.NewSource(1)))
		if g.Pool() != tt.expected {
			t.Errorf("NewGate(%q).Pool() = %q, expected %q", tt.initial, g.Pool(), tt.expected)
		}
	}
}

func TestAssignLetterDrawsFromPool(t *testing.T) {
	m, gate := newTestField(3)
	m.CreateInitialPlatforms()

	for _, p := range m.Live()[1:] {
		letter, ok := p.Letter()
		if !ok {
			t.Fatalf("%v has no letter", p.Handle())
		}
		if !strings.ContainsRune(gate.Pool(), letter) {
			t.Errorf("%v letter %q not in pool %q", p.Handle(), letter, gate.Pool())
		}
		if p.Active() {
			t.Errorf("%v should be Inactive after assignment", p.Handle())
		}
		if got, ok := gate.LetterOf(p.Handle()); !ok || got != letter {
			t.Errorf("LetterOf(%v) = %q, %v; expected %q", p.Handle(), got, ok, letter)
		}
		if !gate.IsNeeded(letter) {
			t.Errorf("letter %q should be needed", letter)
		}
	}
	if gate.Assigned() != m.Count()-1 {
		t.Errorf("Assigned() = %d, expected %d", gate.Assigned(), m.Count()-1)
	}
}

func TestAssignLetterDoesNotDemoteActive(t *testing.T) {
	gate := NewGate("A", rand.New(rand.NewSource(1)))
	p := &field.Platform{}
	p.Activate()

	gate.AssignLetter(p)

	if !p.Active() {
		t.Error("AssignLetter() demoted an Active platform")
	}
	if len(gate.Needed()) != 0 {
		t.Errorf("Needed() = %q, expected nothing for an Active platform", string(gate.Needed()))
	}
}

func TestCorrectKeyActivatesAllSharingPlatforms(t *testing.T) {
	m, gate := newTestField(5)
	m.CreateInitialPlatforms()

	target := gate.Needed()[0]
	var sharing []field.Handle
	for _, p := range m.Live() {
		if l, _ := p.Letter(); l == target {
			sharing = append(sharing, p.Handle())
		}
	}

	res := gate.HandleKeyPress(target + ('a' - 'A')) // Lowercase input
	if !res.Correct {
		t.Fatalf("HandleKeyPress(%q) should be correct", target)
	}
	if len(res.Activated) != len(sharing) {
		t.Fatalf("activated %d platforms, expected %d", len(res.Activated), len(sharing))
	}
	for i, h := range sharing {
		if res.Activated[i] != h {
			t.Errorf("Activated[%d] = %v, expected %v", i, res.Activated[i], h)
		}
		p, _ := m.Lookup(h)
		if !p.Active() {
			t.Errorf("%v should be Active", h)
		}
	}
	if gate.IsNeeded(target) {
		t.Errorf("%q should leave the needed set", target)
	}

	// Same letter again: satisfied, so incorrect
	if res := gate.HandleKeyPress(target); res.Correct {
		t.Errorf("repeated %q should be incorrect", target)
	}
}

func TestKeyOutsideNeededSetIsIncorrect(t *testing.T) {
	_, gate := newTestField(1)

	res := gate.HandleKeyPress('Z')
	if res.Correct || len(res.Activated) != 0 {
		t.Errorf("HandleKeyPress('Z') = %+v, expected incorrect", res)
	}
}

// Two platforms assigned 'A'; typing 'A' activates both, a later
// assignment of 'A' makes it needed again.
func TestLetterReentersNeededSetOnReassignment(t *testing.T) {
	gate := NewGate("A", rand.New(rand.NewSource(1)))
	cfg := config.DefaultGameConfig()
	m := field.NewManager(cfg.Field, cfg.World.Width, field.ReachFrom(cfg.Physics, config.DefaultTickRate), rand.New(rand.NewSource(1)), gate)

	p1 := m.CreatePlatform(200, 100, 100)
	p2 := m.CreatePlatform(600, 100, 100)

	res := gate.HandleKeyPress('a')
	if !res.Correct || len(res.Activated) != 2 {
		t.Fatalf("HandleKeyPress('a') = %+v, expected both platforms", res)
	}
	if !p1.Active() || !p2.Active() {
		t.Fatal("both platforms should be Active")
	}

	p3 := m.CreatePlatform(400, 0, 100)
	if !gate.IsNeeded('A') {
		t.Fatal("'A' should be needed again after reassignment")
	}

	res = gate.HandleKeyPress('A')
	if len(res.Activated) != 1 || res.Activated[0] != p3.Handle() {
		t.Errorf("Activated = %v, expected only %v", res.Activated, p3.Handle())
	}
}

func TestExpandPoolUntilCap(t *testing.T) {
	gate := NewGate(DefaultPool, rand.New(rand.NewSource(1)))

	if !gate.ExpandPool() || gate.Pool() != "ABCDE" {
		t.Fatalf("ExpandPool() gave %q, expected ABCDE", gate.Pool())
	}
	for gate.ExpandPool() {
	}
	if gate.PoolSize() != 26 {
		t.Fatalf("PoolSize() = %d, expected 26", gate.PoolSize())
	}
	if gate.ExpandPool() {
		t.Error("ExpandPool() at the cap should be a no-op")
	}
	if gate.PoolSize() != 26 {
		t.Errorf("PoolSize() = %d after capped expand", gate.PoolSize())
	}
}

func TestExpandPoolFillsGaps(t *testing.T) {
	gate := NewGate("BD", rand.New(rand.NewSource(1)))

	gate.ExpandPool()
	gate.ExpandPool()

	if gate.Pool() != "BDAC" {
		t.Errorf("Pool() = %q, expected BDAC", gate.Pool())
	}
}

func TestRemovePlatformKeepsNeededSet(t *testing.T) {
	gate := NewGate("A", rand.New(rand.NewSource(1)))
	p := &field.Platform{}
	gate.AssignLetter(p)

	gate.RemovePlatform(p)

	if !gate.IsNeeded('A') {
		t.Error("RemovePlatform() should not touch the needed set")
	}
	if _, ok := gate.LetterOf(p.Handle()); ok {
		t.Error("LetterOf() should fail after RemovePlatform()")
	}
	// Typing it is still correct but unlocks nothing
	res := gate.HandleKeyPress('A')
	if !res.Correct || len(res.Activated) != 0 {
		t.Errorf("HandleKeyPress('A') = %+v, expected correct with no activations", res)
	}
}

func TestNeededIsSubsetOfPool(t *testing.T) {
	m, gate := newTestField(9)
	m.CreateInitialPlatforms()

	for cameraY := 0.0; cameraY > -5000; cameraY -= 5 {
		m.Update(cameraY)
		for _, r := range gate.Needed() {
			if !strings.ContainsRune(gate.Pool(), r) {
				t.Fatalf("needed letter %q not in pool %q", r, gate.Pool())
			}
		}
		if int(-cameraY)%1000 == 0 {
			gate.ExpandPool()
		}
	}
}
