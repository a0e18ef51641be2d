package monitor

import "testing"

func TestMemorySnapshot(t *testing.T) {
	m := New()

	snap := m.Memory()

	if snap.HeapAllocMB <= 0 {
		t.Error("expected a positive heap allocation")
	}

	if snap.Goroutines <= 0 {
		t.Error("expected at least one goroutine")
	}
}

func TestReclaimBelowThresholdIsNoop(t *testing.T) {
	m := New()
	m.threshold = 1 << 40 // never trip

	m.Reclaim()

	if m.Reclaims() != 0 {
		t.Error("expected no reclamation below the growth threshold")
	}
}

func TestReclaimAboveThreshold(t *testing.T) {
	m := New()
	m.threshold = 1 // any live heap trips the first pass

	m.Reclaim()

	if m.Reclaims() != 1 {
		t.Errorf("expected one reclamation, got %d", m.Reclaims())
	}
}

func TestProcessSnapshot(t *testing.T) {
	m := New()

	snap := m.Process()

	if snap.Goroutines <= 0 {
		t.Error("expected at least one goroutine")
	}

	// OS metrics are best-effort; on supported platforms the RSS is nonzero
	if m.proc != nil && snap.RSSMB <= 0 {
		t.Error("expected a positive RSS when process metrics are available")
	}
}
