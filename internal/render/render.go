// Package render turns fixtures into the text fragments the bot sends.
// Everything here is pure: a localized fixture in, a string out.
package render

import (
	"fmt"
	"strings"
	"time"

	"telegram-football-fixtures/internal/domain/model"
)

// Mode selects the presentation variant.
type Mode int

const (
	// Upcoming shows kick-off time only; the surrounding message names the day.
	Upcoming Mode = iota
	// UpcomingWithDate includes the full date, for "next match" answers.
	UpcomingWithDate
	// Played shows the result without a date.
	Played
	// PlayedWithDate includes the full date, for "last match" answers.
	PlayedWithDate
)

// BlockSeparator joins fixture blocks inside one message.
const BlockSeparator = "\n\n"

// Fixture renders one fixture as a text block. local must already be the
// fixture's start converted to the display zone.
func Fixture(f *model.Fixture, local time.Time, mode Mode) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🏆 %s", f.LeagueName()))
	if f.Round != "" {
		b.WriteString(" — " + f.Round)
	}
	b.WriteString("\n")

	switch {
	case mode == Played || mode == PlayedWithDate:
		b.WriteString(scoreLine(f))
	default:
		b.WriteString(fmt.Sprintf("⚽ %s vs %s", f.HomeTeamName(), f.AwayTeamName()))
	}
	b.WriteString("\n")

	switch mode {
	case UpcomingWithDate, PlayedWithDate:
		b.WriteString("🕑 " + local.Format("Mon 02 Jan 2006, 15:04"))
	default:
		b.WriteString("🕑 " + local.Format("15:04"))
	}

	if f.Venue != "" {
		b.WriteString("\n🏟 " + f.Venue)
	}
	if f.Referee != "" {
		b.WriteString("\n🧑‍⚖️ " + f.Referee)
	}
	return b.String()
}

// scoreLine renders the result part of a played-mode block, branching on the
// provider's status text.
func scoreLine(f *model.Fixture) string {
	switch {
	case f.Finished() && f.HasScore():
		line := fmt.Sprintf("⚽ %s %d : %d %s",
			f.HomeTeamName(), *f.HomeScore, *f.AwayScore, f.AwayTeamName())
		if f.WentToPenalties() {
			line += fmt.Sprintf(" (pens %d : %d)", *f.HomePenalty, *f.AwayPenalty)
		}
		return line
	case f.InProgress() && f.HasScore():
		return fmt.Sprintf("⏱ %s %d : %d %s — %s",
			f.HomeTeamName(), *f.HomeScore, *f.AwayScore, f.AwayTeamName(), f.Status)
	case f.Abandoned():
		return fmt.Sprintf("🚫 %s vs %s — %s", f.HomeTeamName(), f.AwayTeamName(), f.Status)
	default:
		return fmt.Sprintf("⚽ %s vs %s — not played yet", f.HomeTeamName(), f.AwayTeamName())
	}
}

// Fixtures renders a list of fixtures as ordered blocks ready for Batch.
func Fixtures(fs []*model.Fixture, zone string, mode Mode) []string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	blocks := make([]string, 0, len(fs))
	for _, f := range fs {
		blocks = append(blocks, Fixture(f, f.UTCStart.In(loc), mode))
	}
	return blocks
}
