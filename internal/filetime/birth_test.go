package filetime

import (
	"testing"
	"time"
)

func TestUnixBirthTreatsEpochAsUnset(t *testing.T) {
	if _, ok := unixBirth(0, 0); ok {
		t.Fatal("expected zero birth timestamp to be reported as unset")
	}
	got, ok := unixBirth(1683000000, 5)
	if !ok || !got.Equal(time.Unix(1683000000, 5)) {
		t.Fatalf("unixBirth = %v, %v", got, ok)
	}
}
