package reviews

import (
	"testing"

	"github.com/cortedigital/salon-api/internal/models"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	if s.TotalReviews != 0 {
		t.Errorf("total = %d, want 0", s.TotalReviews)
	}
	if s.AverageRating != 0 {
		t.Errorf("average = %v, want 0", s.AverageRating)
	}
}

func TestSummarizeCountsPerStar(t *testing.T) {
	rs := []models.Review{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 3}, {Rating: 1},
	}

	s := Summarize(rs)

	if s.TotalReviews != 5 {
		t.Errorf("total = %d, want 5", s.TotalReviews)
	}
	if s.FiveStars != 2 || s.FourStars != 1 || s.ThreeStars != 1 || s.TwoStars != 0 || s.OneStar != 1 {
		t.Errorf("star counts = %d/%d/%d/%d/%d, want 2/1/1/0/1",
			s.FiveStars, s.FourStars, s.ThreeStars, s.TwoStars, s.OneStar)
	}
}

// A média é arredondada para uma casa decimal.
func TestSummarizeRoundsAverage(t *testing.T) {
	rs := []models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}

	s := Summarize(rs)

	if s.AverageRating != 4.3 {
		t.Errorf("average = %v, want 4.3", s.AverageRating)
	}
}
