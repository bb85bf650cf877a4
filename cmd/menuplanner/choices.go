package main

import (
	"fmt"
	"strconv"
	"strings"

	"menuplanner/menu"
)

// parseChoices reads "Recipe=plates" arguments. A bare recipe name means
// four plates.
func parseChoices(args []string) ([]menu.Choice, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no recipes chosen")
	}
	out := make([]menu.Choice, 0, len(args))
	for _, arg := range args {
		name, plates, found := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("choice %q: missing recipe name", arg)
		}
		c := menu.Choice{Recipe: name, Plates: 4}
		if found {
			n, err := strconv.ParseFloat(strings.TrimSpace(plates), 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("choice %q: plates must be a non-negative number", arg)
			}
			c.Plates = n
		}
		out = append(out, c)
	}
	return out, nil
}
