package row

// Embed sizing for the trailer player.
const (
	EmbedHeight = "390px"
	EmbedWidth  = "100%"
)

// Poster is one rendered poster image.
type Poster struct {
	Key   int64  `json:"key"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Large bool   `json:"large"`
}

// Class returns the CSS classes of the poster image.
func (p Poster) Class() string {
	if p.Large {
		return "row__poster row__posterLarge"
	}
	return "row__poster"
}

// Embed configures the trailer player.
type Embed struct {
	VideoID  string `json:"video_id"`
	Height   string `json:"height"`
	Width    string `json:"width"`
	Autoplay int    `json:"autoplay"`
}

// View is a snapshot of everything a row renders.
type View struct {
	Title       string   `json:"title"`
	FetchSource string   `json:"fetch_source"`
	Large       bool     `json:"large"`
	Posters     []Poster `json:"posters"`
	Trailer     *Embed   `json:"trailer,omitempty"`
}

// View returns a render snapshot. Poster sources are the base URL followed
// by the layout's path fragment; a missing fragment is not substituted.
func (r *Row) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := View{
		Title:       r.title,
		FetchSource: r.source,
		Large:       r.large,
		Posters:     make([]Poster, 0, len(r.items)),
	}

	for _, item := range r.items {
		if !r.filter.Match(item) {
			continue
		}
		v.Posters = append(v.Posters, Poster{
			Key:   item.ID,
			Src:   r.posterBase + item.ImagePath(r.large),
			Alt:   item.DisplayName(),
			Large: r.large,
		})
	}

	if r.trailerID != "" {
		v.Trailer = &Embed{
			VideoID:  r.trailerID,
			Height:   EmbedHeight,
			Width:    EmbedWidth,
			Autoplay: 1,
		}
	}

	return v
}
