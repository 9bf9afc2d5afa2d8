package services

import (
	"fmt"
	"math"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
)

// SnapshotDecision indica si toca crear un snapshot automático y por qué
type SnapshotDecision struct {
	Should  bool
	Reason  string
	NextDue string
}

// ShouldCreateSnapshot decide, según la frecuencia configurada, si ya toca
// crear un snapshot automático para el usuario.
func ShouldCreateSnapshot(settings models.SnapshotSettings, now time.Time) SnapshotDecision {
	// Sin snapshot previo, siempre toca
	if settings.LastSnapshot == nil {
		return SnapshotDecision{Should: true, Reason: "First automatic snapshot"}
	}

	last := *settings.LastSnapshot
	elapsed := now.Sub(last)

	preferredHour := settings.PreferredHour
	if preferredHour <= 0 {
		preferredHour = 12
	}

	switch settings.Frequency {
	case models.SnapshotFrequency6Hours:
		if elapsed >= 6*time.Hour {
			return SnapshotDecision{
				Should: true,
				Reason: fmt.Sprintf("Last snapshot was %d hours ago", int(math.Round(elapsed.Hours()))),
			}
		}
		return SnapshotDecision{
			Should:  false,
			Reason:  fmt.Sprintf("Next snapshot due in %d hours", int(math.Round((6*time.Hour-elapsed).Hours()))),
			NextDue: last.Add(6 * time.Hour).Format(time.RFC3339),
		}

	case models.SnapshotFrequencyDaily:
		isNewDay := now.Day() != last.Day() || now.Month() != last.Month() || now.Year() != last.Year()

		if isNewDay && now.Hour() >= preferredHour {
			return SnapshotDecision{
				Should: true,
				Reason: fmt.Sprintf("New day and current hour (%d) >= preferred hour (%d)", now.Hour(), preferredHour),
			}
		}

		// Pasadas 24 horas toca igual, sin importar la hora preferida
		if elapsed >= 24*time.Hour {
			return SnapshotDecision{
				Should: true,
				Reason: fmt.Sprintf("Last snapshot was %d days ago", int(math.Round(elapsed.Hours()/24))),
			}
		}

		nextDay := time.Date(last.Year(), last.Month(), last.Day()+1, preferredHour, 0, 0, 0, last.Location())
		return SnapshotDecision{
			Should:  false,
			Reason:  fmt.Sprintf("Next daily snapshot at %d:00", preferredHour),
			NextDue: nextDay.Format(time.RFC3339),
		}

	case models.SnapshotFrequencyWeekly:
		week := 7 * 24 * time.Hour
		if elapsed >= week {
			return SnapshotDecision{
				Should: true,
				Reason: fmt.Sprintf("Last snapshot was %d weeks ago", int(math.Round(elapsed.Hours()/(7*24)))),
			}
		}
		return SnapshotDecision{
			Should:  false,
			Reason:  fmt.Sprintf("Next weekly snapshot due in %d days", int(math.Round((week-elapsed).Hours()/24))),
			NextDue: last.Add(week).Format(time.RFC3339),
		}

	case models.SnapshotFrequencyMonthly:
		isNewMonth := now.Year() > last.Year() ||
			(now.Year() == last.Year() && now.Month() > last.Month())

		if isNewMonth {
			return SnapshotDecision{
				Should: true,
				Reason: fmt.Sprintf("New month: %d-%d (last: %d-%d)", now.Year(), now.Month(), last.Year(), last.Month()),
			}
		}
		return SnapshotDecision{
			Should:  false,
			Reason:  "Same month as last snapshot",
			NextDue: last.AddDate(0, 1, 0).Format(time.RFC3339),
		}

	default:
		return SnapshotDecision{
			Should: false,
			Reason: fmt.Sprintf("Unknown frequency: %s", settings.Frequency),
		}
	}
}
