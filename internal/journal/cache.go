package journal

// AnalysisCache memoizes summarization results per calendar day for the
// lifetime of the process. At most one value is kept per day; a hit is
// returned verbatim without a new remote call.
//
// The cache is keyed purely by day, not by entry-set content: entries edited
// after an analysis do not invalidate the cached summary. This mirrors the
// product behavior and is deliberate (see DESIGN.md).
type AnalysisCache struct {
	byDay map[string]string
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{byDay: make(map[string]string)}
}

// Get returns the cached summary for day, if any.
func (c *AnalysisCache) Get(day string) (string, bool) {
	text, ok := c.byDay[day]
	return text, ok
}

// Put stores or overwrites the summary for day.
func (c *AnalysisCache) Put(day, text string) {
	c.byDay[day] = text
}

// Reset drops all cached summaries.
func (c *AnalysisCache) Reset() {
	c.byDay = make(map[string]string)
}
