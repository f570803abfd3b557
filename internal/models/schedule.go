package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ScheduleTypeEveryday      = "everyday"
	ScheduleTypeWeekly        = "weekly"
	ScheduleTypeSpecificDates = "specificDates"
)

// Schedule is one of three mutually exclusive availability shapes a
// coach can declare. OfferedSlots answers "which slot strings does the
// coach offer on this date"; a nil Schedule offers nothing.
type Schedule interface {
	Type() string
	OfferedSlots(targetDate time.Time) []string
}

type EverydaySchedule struct {
	TimeSlots []string `json:"everydayTimeSlot"`
}

func (s *EverydaySchedule) Type() string { return ScheduleTypeEveryday }

func (s *EverydaySchedule) OfferedSlots(_ time.Time) []string {
	return s.TimeSlots
}

type WeeklySchedule struct {
	Monday    []string `json:"Monday"`
	Tuesday   []string `json:"Tuesday"`
	Wednesday []string `json:"Wednesday"`
	Thursday  []string `json:"Thursday"`
	Friday    []string `json:"Friday"`
	Saturday  []string `json:"Saturday"`
	Sunday    []string `json:"Sunday"`
}

func (s *WeeklySchedule) Type() string { return ScheduleTypeWeekly }

func (s *WeeklySchedule) OfferedSlots(targetDate time.Time) []string {
	switch targetDate.Weekday() {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

type DateSlots struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

type SpecificDatesSchedule struct {
	Dates []DateSlots `json:"specificDates"`
}

func (s *SpecificDatesSchedule) Type() string { return ScheduleTypeSpecificDates }

func (s *SpecificDatesSchedule) OfferedSlots(targetDate time.Time) []string {
	targetDateString := targetDate.UTC().Format("2006-01-02")
	for _, entry := range s.Dates {
		if entry.Date == targetDateString {
			return entry.TimeSlots
		}
	}
	return nil
}

// OfferedSlots tolerates coaches without a configured schedule.
func OfferedSlots(schedule Schedule, targetDate time.Time) []string {
	if schedule == nil {
		return nil
	}
	return schedule.OfferedSlots(targetDate)
}

// DecodeSchedule reads the stored JSONB document. An empty document or
// an unrecognized type yields a nil schedule rather than an error: a
// coach who never configured availability simply offers no slots.
func DecodeSchedule(raw []byte) (Schedule, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var envelope struct {
		Type          string          `json:"type"`
		Everyday      []string        `json:"everydayTimeSlot"`
		Weekly        *WeeklySchedule `json:"weeklySchedule"`
		SpecificDates []DateSlots     `json:"specificDates"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	switch envelope.Type {
	case ScheduleTypeEveryday:
		return &EverydaySchedule{TimeSlots: envelope.Everyday}, nil
	case ScheduleTypeWeekly:
		if envelope.Weekly == nil {
			return &WeeklySchedule{}, nil
		}
		return envelope.Weekly, nil
	case ScheduleTypeSpecificDates:
		return &SpecificDatesSchedule{Dates: envelope.SpecificDates}, nil
	default:
		return nil, nil
	}
}

// EncodeSchedule writes the JSONB document stored on coach_profiles.
func EncodeSchedule(schedule Schedule) ([]byte, error) {
	if schedule == nil {
		return []byte("{}"), nil
	}

	switch s := schedule.(type) {
	case *EverydaySchedule:
		return json.Marshal(struct {
			Type      string   `json:"type"`
			TimeSlots []string `json:"everydayTimeSlot"`
		}{Type: ScheduleTypeEveryday, TimeSlots: s.TimeSlots})
	case *WeeklySchedule:
		return json.Marshal(struct {
			Type   string          `json:"type"`
			Weekly *WeeklySchedule `json:"weeklySchedule"`
		}{Type: ScheduleTypeWeekly, Weekly: s})
	case *SpecificDatesSchedule:
		return json.Marshal(struct {
			Type  string      `json:"type"`
			Dates []DateSlots `json:"specificDates"`
		}{Type: ScheduleTypeSpecificDates, Dates: s.Dates})
	default:
		return nil, fmt.Errorf("encode schedule: unsupported type %q", schedule.Type())
	}
}
