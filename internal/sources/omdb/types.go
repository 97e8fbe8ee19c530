package omdb

// TitleResponse is the ?i= lookup payload. OMDb reports lookup failures in
// the body with Response "False" and a 200 status.
type TitleResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	IMDbID     string `json:"imdbID"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Found reports whether the lookup matched a title.
func (r *TitleResponse) Found() bool {
	return r.Response == "True"
}
