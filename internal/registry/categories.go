package registry

import "sort"

// Categories returns every distinct category tag in the store, sorted.
// Entries without categories contribute nothing.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	for _, r := range s.records {
		for _, tag := range r.Categories {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// InCategory returns the sorted names of the entries tagged with tag.
func (s *Store) InCategory(tag string) []string {
	var names []string
	for name, r := range s.records {
		for _, t := range r.Categories {
			if t == tag {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// CategoryIndex groups entry names by category tag. Each group is sorted.
func (s *Store) CategoryIndex() map[string][]string {
	index := make(map[string][]string)
	for _, name := range s.Names() {
		seen := make(map[string]bool)
		for _, tag := range s.records[name].Categories {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			index[tag] = append(index[tag], name)
		}
	}
	return index
}
