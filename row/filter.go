package row

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/posterrow/tmdb"
)

// Filter is a compiled expression that selects which retained items a row
// displays, e.g. `MediaType == "tv" && VoteAverage >= 7`.
type Filter struct {
	program *vm.Program
	expr    string
}

// helpers are available to every filter expression
var helpers = map[string]any{
	"contains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"startsWith": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// CompileFilter compiles a filter expression. An empty expression yields a
// nil filter, which matches everything.
func CompileFilter(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(filterEnv(tmdb.MediaItem{})),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

func filterEnv(item tmdb.MediaItem) map[string]any {
	env := map[string]any{
		"ID":           item.ID,
		"Name":         item.DisplayName(),
		"MediaType":    string(item.MediaType),
		"Overview":     item.Overview,
		"PosterPath":   item.PosterPath,
		"BackdropPath": item.BackdropPath,
		"VoteAverage":  item.VoteAverage,
		"Popularity":   item.Popularity,
		"GenreIDs":     item.GenreIDs,
		"hasGenre": func(id int) bool {
			for _, g := range item.GenreIDs {
				if g == id {
					return true
				}
			}
			return false
		},
	}
	for k, v := range helpers {
		env[k] = v
	}
	return env
}

// Match reports whether item passes the filter. A nil filter matches
// everything; evaluation errors reject the item.
func (f *Filter) Match(item tmdb.MediaItem) bool {
	if f == nil {
		return true
	}

	result, err := expr.Run(f.program, filterEnv(item))
	if err != nil {
		return false
	}

	ok, _ := result.(bool)
	return ok
}

// String returns the original expression
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}
