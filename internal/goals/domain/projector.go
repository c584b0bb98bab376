package domain

// ProjectProgress sets every total-tracking goal's progress to the running
// solved total. Daily goals are left alone. Pure mapping; persisting the
// updated goals is the caller's concern.
func ProjectProgress(goals []*Goal, totalSolved int) {
	for _, g := range goals {
		if g.TracksTotal() {
			g.SetProgress(totalSolved)
		}
	}
}
