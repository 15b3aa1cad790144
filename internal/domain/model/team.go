package model

// Team is a reference entity looked up by id; immutable from the bot's
// perspective, refreshed only by ingestion.
type Team struct {
	ID      int64
	Name    string
	Country string
	LogoURL string
}

// League is a championship a fixture belongs to.
type League struct {
	ID      int64
	Name    string
	Country string
	LogoURL string
}
