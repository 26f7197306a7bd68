package attendance

import (
	"fmt"
	"time"

	"github.com/ksyv/Carillon/models"
)

const dateLayout = "2006-01-02"

// TimeRules porte l'heure limite du soir. Valeur purement civile (HH:MM),
// évaluée dans le fuseau de l'instant comparé.
type TimeRules struct {
	CutoffHour   int
	CutoffMinute int
}

// DefaultRules : 18h35 (la limite historique de 18h30 a été resserrée).
func DefaultRules() TimeRules { return TimeRules{CutoffHour: 18, CutoffMinute: 35} }

// ParseCutoff lit "HH:MM".
func ParseCutoff(s string) (TimeRules, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeRules{}, fmt.Errorf("invalid cutoff %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeRules{}, fmt.Errorf("invalid cutoff %q", s)
	}
	return TimeRules{CutoffHour: h, CutoffMinute: m}, nil
}

func (r TimeRules) cutoffOn(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, r.CutoffHour, r.CutoffMinute, 0, 0, loc)
}

// IsLateCheckout : strictement après la limite du jour courant.
// Un départ à la seconde pile de la limite n'est pas en retard.
func (r TimeRules) IsLateCheckout(now time.Time) bool {
	y, m, d := now.Date()
	return now.After(r.cutoffOn(y, m, d, now.Location()))
}

// LateOn juge le départ contre la limite du jour du pointage lui-même,
// pas celle du jour où le départ est saisi. Un départ enregistré a
// posteriori pour une séance passée est donc jugé sur la bonne journée.
// Si la date est illisible, on retombe sur le jour de l'instant.
func (r TimeRules) LateOn(date string, at time.Time) bool {
	d, err := time.ParseInLocation(dateLayout, date, at.Location())
	if err != nil {
		return r.IsLateCheckout(at)
	}
	return at.After(r.cutoffOn(d.Year(), d.Month(), d.Day(), at.Location()))
}

// SuggestedSlot propose le créneau par défaut dans l'interface :
// matin avant 13h, soir ensuite. Aucun invariant ne repose dessus.
func SuggestedSlot(now time.Time) string {
	if now.Hour() < 13 {
		return models.SessionMatin
	}
	return models.SessionSoir
}
