package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/anvar-t/GymAppBack/internal/models"
)

type updateScheduleRequest struct {
	Type  string          `json:"type"`
	Slots json.RawMessage `json:"slots"`
}

// buildScheduleFromRequest validates the slots payload against the
// declared type and produces the schedule to store. The returned string
// is empty on success and the validation message otherwise.
func buildScheduleFromRequest(req updateScheduleRequest) (models.Schedule, string) {
	switch req.Type {
	case models.ScheduleTypeEveryday:
		return buildEverydaySchedule(req.Slots)
	case models.ScheduleTypeWeekly:
		return buildWeeklySchedule(req.Slots)
	case models.ScheduleTypeSpecificDates:
		return buildSpecificDatesSchedule(req.Slots)
	default:
		return nil, "Invalid schedule type"
	}
}

func buildEverydaySchedule(raw json.RawMessage) (models.Schedule, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "Everyday time slots are required"
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, "Everyday time slots should be an array"
	}
	if len(slots) == 0 {
		return nil, "Everyday time slots are required"
	}
	return &models.EverydaySchedule{TimeSlots: slots}, ""
}

func buildWeeklySchedule(raw json.RawMessage) (models.Schedule, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "Weekly schedule is required"
	}
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, "Weekly schedule must be an object of day name to time slots"
	}

	parsed := make(map[string][]string, len(days))
	for day, value := range days {
		var slots []string
		if err := json.Unmarshal(value, &slots); err != nil {
			return nil, fmt.Sprintf("Time slots for %s must be an array", day)
		}
		parsed[day] = slots
	}

	return &models.WeeklySchedule{
		Monday:    parsed["Monday"],
		Tuesday:   parsed["Tuesday"],
		Wednesday: parsed["Wednesday"],
		Thursday:  parsed["Thursday"],
		Friday:    parsed["Friday"],
		Saturday:  parsed["Saturday"],
		Sunday:    parsed["Sunday"],
	}, ""
}

func buildSpecificDatesSchedule(raw json.RawMessage) (models.Schedule, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "Specific dates and time slots are required"
	}
	var entries []struct {
		Date      string          `json:"date"`
		TimeSlots json.RawMessage `json:"timeSlots"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, "Specific dates must be an array of date and time slot entries"
	}
	if len(entries) == 0 {
		return nil, "Specific dates and time slots are required"
	}

	dates := make([]models.DateSlots, 0, len(entries))
	for _, entry := range entries {
		if entry.Date == "" || len(entry.TimeSlots) == 0 || string(entry.TimeSlots) == "null" {
			return nil, fmt.Sprintf("Invalid specific date or time slots for %s", entry.Date)
		}
		var slots []string
		if err := json.Unmarshal(entry.TimeSlots, &slots); err != nil {
			return nil, fmt.Sprintf("Time slots for %s must be an array", entry.Date)
		}
		if len(slots) == 0 {
			return nil, fmt.Sprintf("Invalid specific date or time slots for %s", entry.Date)
		}
		dates = append(dates, models.DateSlots{Date: entry.Date, TimeSlots: slots})
	}

	return &models.SpecificDatesSchedule{Dates: dates}, ""
}
