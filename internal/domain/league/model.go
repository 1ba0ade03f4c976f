package league

// League is a competition observed on stored matches.
type League struct {
	ID   int64
	Name string
}
