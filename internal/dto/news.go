package dto

// NewsItem is one headline record, most-recent-first from the provider.
type NewsItem struct {
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

type NewsResponse struct {
	Symbol string     `json:"symbol"`
	News   []NewsItem `json:"news,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// NewsAPI /v2/everything response
type NewsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}
