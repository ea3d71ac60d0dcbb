package cmd

import "strings"

// commaList is a pflag.Value holding a comma-separated list. Empty items are
// dropped, so "a,,b," is [a b]. Repeating the flag appends to the list.
type commaList struct {
	values  *[]string
	changed bool
}

func newCommaList(p *[]string) *commaList {
	return &commaList{values: p}
}

func (c *commaList) Set(value string) error {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item != "" {
			items = append(items, item)
		}
	}
	if !c.changed {
		*c.values = items
		c.changed = true
	} else {
		*c.values = append(*c.values, items...)
	}
	return nil
}

func (c *commaList) String() string {
	return strings.Join(*c.values, ",")
}

func (c *commaList) Type() string {
	return "list"
}
