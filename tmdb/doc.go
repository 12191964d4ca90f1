// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client is bound to a single base address at construction time. Callers
// issue GET requests with paths relative to that base; query parameters and
// credentials are supplied per call, with the configured API key and language
// filled in only when the caller left them out.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		"your-api-key",
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.FetchResults(ctx, tmdb.Trending.FetchSource)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range resp.Results {
//		fmt.Println(item.ID, item.DisplayName())
//	}
//
// # Lifecycle
//
// There is no package-level client. The composing application constructs one
// Client and passes it to every consumer that needs catalog access.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError:
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle bad API key
//	}
package tmdb
