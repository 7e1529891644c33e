package appointment

import "time"

// Janela de atendimento padrão do salão. Slots de 30 minutos.
const (
	DayStart     = "08:00"
	DayEnd       = "18:00"
	SlotDuration = 30 * time.Minute
)

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Slots gera a grade de horários de um dia para um profissional.
// Horários ocupados e horários que já passaram ficam indisponíveis.
func Slots(date time.Time, occupied map[string]bool, now time.Time) []Slot {
	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(DayStart)
	dayEnd := parseHM(DayEnd)

	var slots []Slot
	for cur := dayStart; cur.Add(SlotDuration).Before(dayEnd) || cur.Add(SlotDuration).Equal(dayEnd); cur = cur.Add(SlotDuration) {
		hm := cur.Format("15:04")
		slots = append(slots, Slot{
			Time:      hm,
			Available: !occupied[hm] && cur.After(now),
		})
	}

	return slots
}

// Free filtra a grade deixando apenas os horários disponíveis.
func Free(slots []Slot) []Slot {
	free := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			free = append(free, s)
		}
	}
	return free
}
