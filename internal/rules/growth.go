package rules

// NewMember reports whether the engagement set strictly grew, and if so
// returns the first element of after that is absent from before. Length
// comparison only: a remove+add that keeps the length does not count as
// growth. At most one new member is expected per tick; with concurrent
// multi-element growth only the first found is reported.
func NewMember(before, after []string) (string, bool) {
	if len(after) <= len(before) {
		return "", false
	}
	old := make(map[string]struct{}, len(before))
	for _, m := range before {
		old[m] = struct{}{}
	}
	for _, m := range after {
		if _, ok := old[m]; !ok {
			return m, true
		}
	}
	return "", false
}
