package tmdb

// Collection is a named catalog FetchSource.
type Collection struct {
	Title       string
	FetchSource string
	Large       bool
}

// Built-in collections, matching the rows of the classic home screen.
var (
	Originals     = Collection{Title: "NETFLIX ORIGINALS", FetchSource: "/discover/tv?with_networks=213", Large: true}
	Trending      = Collection{Title: "Trending Now", FetchSource: "/trending/all/week"}
	TopRated      = Collection{Title: "Top Rated", FetchSource: "/movie/top_rated"}
	Action        = Collection{Title: "Action Movies", FetchSource: "/discover/movie?with_genres=28"}
	Comedy        = Collection{Title: "Comedy Movies", FetchSource: "/discover/movie?with_genres=35"}
	Horror        = Collection{Title: "Horror Movies", FetchSource: "/discover/movie?with_genres=27"}
	Romance       = Collection{Title: "Romance Movies", FetchSource: "/discover/movie?with_genres=10749"}
	Documentaries = Collection{Title: "Documentaries", FetchSource: "/discover/movie?with_genres=99"}
)

// Collections lists the built-in collections in display order.
var Collections = []Collection{
	Originals,
	Trending,
	TopRated,
	Action,
	Comedy,
	Horror,
	Romance,
	Documentaries,
}
