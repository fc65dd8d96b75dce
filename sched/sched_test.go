package sched

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	id := NewID()
	ctx := NewContext(context.Background(), id)

	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("FromContext=(%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestFromContext_Absent(t *testing.T) {
	t.Parallel()

	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("FromContext on a bare context reported an identity")
	}
	if _, ok := FromContext(nil); ok {
		t.Fatal("FromContext(nil) reported an identity")
	}
	if _, ok := FromContext(NewContext(context.Background(), ID{})); ok {
		t.Fatal("FromContext with a zero identity reported ok")
	}
}

func TestIDs(t *testing.T) {
	t.Parallel()

	a, b := NewID(), NewID()
	if a == b {
		t.Fatal("two NewID calls produced the same identifier")
	}
	if a.IsZero() || b.IsZero() {
		t.Fatal("NewID produced a zero identifier")
	}
	if !(ID{}).IsZero() {
		t.Fatal("zero ID not reported as zero")
	}
	if a.String() == (ID{}).String() {
		t.Fatal("non-zero ID rendered as the zero string")
	}
}

func TestStateCodeString(t *testing.T) {
	t.Parallel()

	cases := map[StateCode]string{
		CodeRunning:   "running",
		CodeReady:     "ready",
		CodeBlocked:   "blocked",
		CodeSuspended: "suspended",
		CodeDeleted:   "deleted",
		CodeInvalid:   "invalid",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("StateCode(%d).String()=%q, want %q", code, got, want)
		}
	}
	if got := StateCode(99).String(); got != "StateCode(99)" {
		t.Errorf("StateCode(99).String()=%q, want %q", got, "StateCode(99)")
	}
}
