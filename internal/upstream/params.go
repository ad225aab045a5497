package upstream

import (
	"fmt"
	"net/url"

	"github.com/iancoleman/strcase"
)

// Params are query parameters named the way resolvers name arguments
// (camelCase). Upstream services expect snake_case.
type Params map[string]any

// Values converts p to snake_case query values. Nil values and empty
// strings are skipped.
func (p Params) Values() url.Values {
	v := url.Values{}
	for name, value := range p {
		switch x := value.(type) {
		case nil:
			continue
		case string:
			if x == "" {
				continue
			}
			v.Set(strcase.ToSnake(name), x)
		case []string:
			for _, s := range x {
				v.Add(strcase.ToSnake(name), s)
			}
		default:
			v.Set(strcase.ToSnake(name), fmt.Sprint(x))
		}
	}
	return v
}

func (p Params) Encode() string {
	return p.Values().Encode()
}
