package model

import "fmt"

// NotificationType identifies one notifier kind a chat can subscribe to.
type NotificationType int

const (
	NotifTeamsDaily   NotificationType = 1 // daily digest of favourite-team fixtures
	NotifLeaguesDaily NotificationType = 2 // daily digest of favourite-league fixtures
	NotifApproach     NotificationType = 3 // alert shortly before kick-off
	NotifPlayed       NotificationType = 4 // alert once a fixture is finished
)

// AllNotificationTypes lists every known type. Subscribing a chat creates a
// row for each of these at once; a chat either has all rows or none.
func AllNotificationTypes() []NotificationType {
	return []NotificationType{NotifTeamsDaily, NotifLeaguesDaily, NotifApproach, NotifPlayed}
}

// Daily reports whether this type fires on a configured time of day.
func (t NotificationType) Daily() bool {
	return t == NotifTeamsDaily || t == NotifLeaguesDaily
}

func (t NotificationType) String() string {
	switch t {
	case NotifTeamsDaily:
		return "favourite teams daily"
	case NotifLeaguesDaily:
		return "favourite leagues daily"
	case NotifApproach:
		return "match approaching"
	case NotifPlayed:
		return "match played"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// DefaultDailyTime is used when a chat never configured one.
const DefaultDailyTime = "08:00"

// NotifSubscription is one (chat, notification type) row.
type NotifSubscription struct {
	ChatID    int64
	Type      NotificationType
	Enabled   bool
	DailyTime string // "HH:MM", empty unless the type is daily
}

// UserTimeZone is one named zone attached to a chat. At most one row per
// chat has Main set; inserting a new main zone replaces the previous one.
type UserTimeZone struct {
	ChatID int64
	Name   string
	Main   bool
}

// FavouriteTeam and FavouriteLeague are plain membership pairs.
type FavouriteTeam struct {
	ChatID int64
	TeamID int64
}

type FavouriteLeague struct {
	ChatID   int64
	LeagueID int64
}
