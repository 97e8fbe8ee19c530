package tmdb

// PopularResponse is one page of /movie/popular.
type PopularResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []PopularMovie `json:"results"`
}

// PopularMovie is the summary entry listed on a popular page.
type PopularMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// MovieDetails is the /movie/{id} payload, trimmed to what the catalog keeps.
type MovieDetails struct {
	ID      int64   `json:"id"`
	IMDbID  *string `json:"imdb_id"`
	Title   string  `json:"title"`
	Budget  int64   `json:"budget"`
	Revenue int64   `json:"revenue"`
	Runtime int     `json:"runtime"`
}
