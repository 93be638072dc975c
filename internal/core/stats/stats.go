package stats

// Summary is the dashboard snapshot. Every field is counted fresh.
type Summary struct {
	NumBooks              int    `json:"num_books"`
	NumInstances          int    `json:"num_instances"`
	NumInstancesAvailable int    `json:"num_instances_available"`
	NumAuthors            int    `json:"num_authors"`
	NumGenres             int    `json:"num_genres"`
	TitleFilter           string `json:"title_filter"`
	NumBooksMatchingTitle int    `json:"num_books_matching_title"`
}

// DefaultTitleFilter is the substring counted when the caller gives none.
const DefaultTitleFilter = "road"
