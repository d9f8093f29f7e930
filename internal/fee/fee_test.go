package fee

import "testing"

func TestComputeOnePercent(t *testing.T) {
	p := NewPolicy(DefaultBps)

	if got := p.Compute(100); got != 1 {
		t.Fatalf("expected fee 1 on 100, got %d", got)
	}
	if got := p.Compute(10_000); got != 100 {
		t.Fatalf("expected fee 100 on 10000, got %d", got)
	}
}

func TestComputeRoundsDown(t *testing.T) {
	p := NewPolicy(DefaultBps)

	// Below 100 minor units a 1% fee floors to zero.
	if got := p.Compute(99); got != 0 {
		t.Fatalf("expected fee 0 on 99, got %d", got)
	}
	if got := p.Compute(199); got != 1 {
		t.Fatalf("expected fee 1 on 199, got %d", got)
	}
}

func TestComputeZeroAndNegative(t *testing.T) {
	p := NewPolicy(DefaultBps)
	if got := p.Compute(0); got != 0 {
		t.Fatalf("expected fee 0 on 0, got %d", got)
	}
	if got := p.Compute(-50); got != 0 {
		t.Fatalf("expected fee 0 on negative amount, got %d", got)
	}

	free := NewPolicy(0)
	if got := free.Compute(1_000_000); got != 0 {
		t.Fatalf("expected zero-rate policy to charge nothing, got %d", got)
	}

	clamped := NewPolicy(-25)
	if got := clamped.Bps(); got != 0 {
		t.Fatalf("expected negative rate clamped to 0, got %d", got)
	}
}
