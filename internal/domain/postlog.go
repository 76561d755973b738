package domain

// PostLog is the durable record of what the channel has already received.
// Every URL ever published is present in PublishedLinks; PostsCount grows by one
// per successful publish, tips included.
type PostLog struct {
	PostsCount     int             `json:"postsCount"`
	PublishedLinks map[string]bool `json:"publishedLinks"`
}

// NewPostLog returns an empty log with an initialised link set.
func NewPostLog() PostLog {
	return PostLog{PublishedLinks: map[string]bool{}}
}

// Has reports whether url was published before.
func (l PostLog) Has(url string) bool {
	return l.PublishedLinks[url]
}

// RecordArticle marks url as published and bumps the counter.
func (l *PostLog) RecordArticle(url string) {
	if l.PublishedLinks == nil {
		l.PublishedLinks = map[string]bool{}
	}
	l.PublishedLinks[url] = true
	l.PostsCount++
}

// RecordTip bumps the counter for a post that has no article behind it.
func (l *PostLog) RecordTip() {
	l.PostsCount++
}

// TipDue reports whether the next post is a tip under the given cadence.
func (l PostLog) TipDue(every int) bool {
	if every <= 0 {
		return false
	}
	return (l.PostsCount+1)%every == 0
}
