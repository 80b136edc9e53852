package user

// User is a pool member. TotalScore caches Σ points of the user's scored picks;
// the picks are the source of truth.
type User struct {
	ID         string
	Name       string
	Email      string
	TotalScore int
}
