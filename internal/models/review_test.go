package models

import "testing"

func TestIsRatingValid(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := IsRatingValid(rating); got != want {
			t.Errorf("IsRatingValid(%d) = %v, want %v", rating, got, want)
		}
	}
}
