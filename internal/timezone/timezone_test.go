package timezone

import "testing"

func TestLocationIsSalonTimezone(t *testing.T) {
	if got := Location().String(); got != DefaultTimezone {
		t.Errorf("Location() = %s, want %s", got, DefaultTimezone)
	}
}

func TestNowUsesSalonTimezone(t *testing.T) {
	if got := Now().Location().String(); got != DefaultTimezone {
		t.Errorf("Now().Location() = %s, want %s", got, DefaultTimezone)
	}
}
