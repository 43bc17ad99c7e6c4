package notification

import (
	"fmt"
	"strings"
	"time"

	"pizzeria/models"
	"pizzeria/utils"

	ics "github.com/arran4/golang-ical"
)

const defaultEventHours = 2

var eventLocation = utils.BusinessLocation

// EventStart resolves when a booking takes place, preferring the confirmed date and time.
// A missing or unparseable time defaults to noon.
func EventStart(b *models.Booking) (time.Time, error) {
	date := b.EventDate
	if b.ConfirmedDate != "" {
		date = b.ConfirmedDate
	}
	clock := b.EventTime
	if b.ConfirmedTime != "" {
		clock = b.ConfirmedTime
	}

	day, err := time.ParseInLocation(utils.DateLayout, strings.TrimSpace(date), eventLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable event date %q: %w", date, err)
	}

	hour, minute := 12, 0
	if t, err := time.Parse("15:04", strings.TrimSpace(clock)); err == nil {
		hour, minute = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, eventLocation), nil
}

// BookingICS renders a single-event calendar invite for a confirmed booking.
func BookingICS(b *models.Booking, organizer string, now time.Time) ([]byte, error) {
	start, err := EventStart(b)
	if err != nil {
		return nil, err
	}
	hours := b.DurationHours
	if hours <= 0 {
		hours = defaultEventHours
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//Pablo's Pizza//Bookings//ES")

	ev := cal.AddEvent(b.ID + "@pablospizza")
	ev.SetCreatedTime(now)
	ev.SetDtStampTime(now)
	ev.SetStartAt(start)
	ev.SetEndAt(start.Add(time.Duration(hours) * time.Hour))
	ev.SetSummary(fmt.Sprintf("%s - Pablo's Pizza", ServiceName(b.ServiceType)))
	ev.SetLocation(b.Location)
	ev.SetDescription(fmt.Sprintf("%s para %d participantes. Precio: %s CLP",
		ServiceName(b.ServiceType), b.Participants, utils.FormatMoney(quotedPrice(b))))
	if organizer != "" {
		ev.SetOrganizer("mailto:"+organizer, ics.WithCN("Pablo's Pizza"))
	}
	if b.ClientEmail != "" {
		ev.AddAttendee("mailto:"+b.ClientEmail,
			ics.CalendarUserTypeIndividual,
			ics.ParticipationStatusAccepted,
			ics.ParticipationRoleReqParticipant,
			ics.WithCN(b.ClientName),
		)
	}

	return []byte(cal.Serialize()), nil
}

// quotedPrice is the confirmed price when one was agreed, otherwise the estimate.
func quotedPrice(b *models.Booking) float64 {
	if b.ConfirmedPrice != nil && *b.ConfirmedPrice > 0 {
		return *b.ConfirmedPrice
	}
	return b.EstimatedPrice
}
