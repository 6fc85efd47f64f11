package usecase

// AverageScore returns the mean of count scores totalling sum, rounded half up,
// or nil when there are no scores. Integer arithmetic keeps x.5 exact.
func AverageScore(sum, count int64) *int {
	if count <= 0 {
		return nil
	}
	rating := int((2*sum + count) / (2 * count))
	return &rating
}
