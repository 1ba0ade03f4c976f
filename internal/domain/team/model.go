package team

// Team is a club observed as the home or away side of a stored match.
type Team struct {
	ID   int64
	Name string
}
