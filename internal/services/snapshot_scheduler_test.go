package services

import (
	"testing"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func settingsWith(frequency string, preferredHour int, last *time.Time) models.SnapshotSettings {
	return models.SnapshotSettings{
		UserID:              "user-1",
		AutoSnapshotEnabled: true,
		Frequency:           frequency,
		PreferredHour:       preferredHour,
		LastSnapshot:        last,
	}
}

func TestShouldCreateSnapshot_SinSnapshotPrevio(t *testing.T) {
	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyDaily, 12, nil), time.Now())

	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_6Horas(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	recent := now.Add(-3 * time.Hour)
	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequency6Hours, 12, &recent), now)
	assert.False(t, decision.Should)
	assert.NotEmpty(t, decision.NextDue)

	old := now.Add(-7 * time.Hour)
	decision = ShouldCreateSnapshot(settingsWith(models.SnapshotFrequency6Hours, 12, &old), now)
	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_DiarioConHoraPreferida(t *testing.T) {
	// Ayer a las 08:00, hoy a las 13:00 con hora preferida 12: toca
	last := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)

	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyDaily, 12, &last), now)
	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_DiarioAntesDeHoraPreferida(t *testing.T) {
	// Día nuevo pero a las 09:00 con hora preferida 12 y menos de 24h: no toca
	last := time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyDaily, 12, &last), now)
	assert.False(t, decision.Should)
}

func TestShouldCreateSnapshot_Diario24HorasFuerzaIgual(t *testing.T) {
	// Pasadas 24h toca aunque la hora actual sea menor a la preferida
	last := time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyDaily, 12, &last), now)
	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_Semanal(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	recent := now.Add(-6 * 24 * time.Hour)
	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyWeekly, 12, &recent), now)
	assert.False(t, decision.Should)

	old := now.Add(-8 * 24 * time.Hour)
	decision = ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyWeekly, 12, &old), now)
	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_Mensual(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	// Mismo mes: no toca aunque hayan pasado semanas
	sameMonth := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	decision := ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyMonthly, 12, &sameMonth), now)
	assert.False(t, decision.Should)

	// Mes anterior: toca, aunque hayan pasado pocos días
	prevMonth := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	decision = ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyMonthly, 12, &prevMonth), now)
	assert.True(t, decision.Should)

	// Cambio de año
	prevYear := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	decision = ShouldCreateSnapshot(settingsWith(models.SnapshotFrequencyMonthly, 12, &prevYear), now)
	assert.True(t, decision.Should)
}

func TestShouldCreateSnapshot_FrecuenciaDesconocida(t *testing.T) {
	last := time.Now().Add(-100 * time.Hour)
	decision := ShouldCreateSnapshot(settingsWith("hourly", 12, &last), time.Now())

	assert.False(t, decision.Should)
}
