package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidMode     = errors.New("model: invalid mode")
	ErrInvalidDuration = errors.New("model: invalid focus duration")
	ErrInvalidSender   = errors.New("model: invalid chat sender")
)

type Mode string

const (
	ModePomodoro Mode = "pomodoro"
	ModeMission  Mode = "mission"
	ModeClean    Mode = "clean"
	ModeMentor   Mode = "mentor"
)

const DefaultMode = ModePomodoro

// Modes lists the modes in display order.
var Modes = []Mode{ModePomodoro, ModeMission, ModeClean, ModeMentor}

func (m Mode) IsValid() bool {
	switch m {
	case ModePomodoro, ModeMission, ModeClean, ModeMentor:
		return true
	default:
		return false
	}
}

func (m Mode) Title() string {
	switch m {
	case ModePomodoro:
		return "Bloques de Enfoque"
	case ModeMission:
		return "Misión del Día"
	case ModeClean:
		return "Entorno Limpio"
	case ModeMentor:
		return "Mentor Personal"
	default:
		return string(m)
	}
}

func (m Mode) Tagline() string {
	switch m {
	case ModePomodoro:
		return "Temporizador"
	case ModeMission:
		return "Gamificado"
	case ModeClean:
		return "1 tarea"
	case ModeMentor:
		return "Coach"
	default:
		return ""
	}
}

func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
	return m, nil
}

// AllowedDurations are the focus block lengths in minutes.
var AllowedDurations = []int{25, 50, 90}

const DefaultDurationMinutes = 50

func ValidateDuration(minutes int) error {
	for _, d := range AllowedDurations {
		if d == minutes {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrInvalidDuration, minutes)
}

// NextDuration cycles through AllowedDurations.
func NextDuration(current int) int {
	for i, d := range AllowedDurations {
		if d == current {
			return AllowedDurations[(i+1)%len(AllowedDurations)]
		}
	}
	return AllowedDurations[0]
}

const (
	TaskReward    = 10
	SessionReward = 15
)

const DayLayout = "2006-01-02"

// DayKey is the stats key for t, using the UTC calendar day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DailyStats maps an ISO day to the number of tasks completed that day.
type DailyStats map[string]int

func (s DailyStats) Clone() DailyStats {
	out := make(DailyStats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Sanitize returns a copy without malformed days or non-positive counts.
func (s DailyStats) Sanitize() (DailyStats, int) {
	out := make(DailyStats, len(s))
	dropped := 0
	for day, n := range s {
		if _, err := time.Parse(DayLayout, day); err != nil || n <= 0 {
			dropped++
			continue
		}
		out[day] = n
	}
	return out, dropped
}

func (s DailyStats) Days() []string {
	days := make([]string, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func (s DailyStats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// ParsePoints decodes a stored point total. Anything that is not a non-negative integer is rejected.
func ParsePoints(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("model: negative points %d", v)
	}
	return v, nil
}
