package session

// progressFold is the shelf-entry advance one session produces. Page motion
// applies only to page-based methods; listening time only to audiobooks.
type progressFold struct {
	// pageDelta is added to the entry's current page when the session
	// carries only a pages_read count.
	pageDelta int

	// pageFloor is the minimum resulting page when the session carries an
	// explicit end_page. Re-reading an earlier chapter never moves the
	// bookmark backwards.
	pageFloor int

	// secondsDelta is added to the entry's listening time.
	secondsDelta int
}

func foldProgress(session *Session) progressFold {
	var fold progressFold

	if session.Method == MethodAudiobook {
		if session.MinutesRead != nil {
			fold.secondsDelta = *session.MinutesRead * 60
		}
		return fold
	}

	if session.EndPage != nil {
		fold.pageFloor = *session.EndPage
	} else if session.PagesRead != nil {
		fold.pageDelta = *session.PagesRead
	}
	return fold
}

// apply advances a shelf position. It mirrors the SQL UPDATE that
// CreateSession issues: GREATEST(current_page + delta, floor) and a plain
// seconds increment.
func (fold progressFold) apply(currentPage, currentSeconds int) (page, seconds int) {
	return max(currentPage+fold.pageDelta, fold.pageFloor), currentSeconds + fold.secondsDelta
}
