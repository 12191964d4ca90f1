package tmdb

// MediaType represents the type of media
type MediaType string

const (
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents a TV show
	MediaTypeTV MediaType = "tv"
	// MediaTypePerson is returned by multi search for cast and crew
	MediaTypePerson MediaType = "person"
)

// IsVideo reports whether the media type can have trailers.
func (mt MediaType) IsVideo() bool {
	return mt == MediaTypeMovie || mt == MediaTypeTV
}

// MediaItem is one catalog entry, either a movie or a TV show.
type MediaItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name,omitempty"`
	Title         string    `json:"title,omitempty"`
	OriginalName  string    `json:"original_name,omitempty"`
	OriginalTitle string    `json:"original_title,omitempty"`
	MediaType     MediaType `json:"media_type,omitempty"`
	Overview      string    `json:"overview,omitempty"`
	PosterPath    string    `json:"poster_path,omitempty"`
	BackdropPath  string    `json:"backdrop_path,omitempty"`
	VoteAverage   float64   `json:"vote_average,omitempty"`
	Popularity    float64   `json:"popularity,omitempty"`
	GenreIDs      []int     `json:"genre_ids,omitempty"`
}

// DisplayName returns the best available name for the item.
// TV entries carry Name, movie entries carry Title.
func (m *MediaItem) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Title != "" {
		return m.Title
	}
	if m.OriginalName != "" {
		return m.OriginalName
	}
	return m.OriginalTitle
}

// ImagePath returns the large-layout or compact-layout path fragment.
// Large rows use the portrait poster, compact rows the backdrop.
func (m *MediaItem) ImagePath(large bool) string {
	if large {
		return m.PosterPath
	}
	return m.BackdropPath
}

// ResultsResponse is the paginated result list returned by collection endpoints
type ResultsResponse struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// HasMorePages checks if there are more pages to fetch
func (rr *ResultsResponse) HasMorePages() bool {
	return rr.Page < rr.TotalPages
}

// Video is one entry of a /{media_type}/{id}/videos response.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// IsYouTube reports whether the video is hosted on YouTube.
func (v *Video) IsYouTube() bool {
	return v.Site == "YouTube" && v.Key != ""
}

// VideosResponse is the response of the videos endpoint.
type VideosResponse struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}

// errorResponse is the body TMDB sends alongside non-2xx statuses.
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
