package twitter

import "strings"

// Page is one page of a list result.
type Page struct {
	Items  []any  `json:"items"`
	Cursor Cursor `json:"cursor"`
}

// Cursor holds the pagination cursors of a timeline page.
type Cursor struct {
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
}

// EmptyPage is the neutral result of a list operation.
func EmptyPage() Page {
	return Page{Items: []any{}}
}

// unavailable lists result types the session cannot see.
var unavailable = map[string]bool{
	"UserUnavailable":  true,
	"TweetUnavailable": true,
	"TweetTombstone":   true,
}

// dig walks a decoded JSON document.
func dig(doc any, keys []string) (any, bool) {
	cur := doc
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// unwrap strips visibility wrappers from a tweet result.
func unwrap(result any) any {
	m, ok := result.(map[string]any)
	if !ok {
		return result
	}
	if m["__typename"] == "TweetWithVisibilityResults" {
		if inner, ok := m["tweet"]; ok {
			return inner
		}
	}
	return result
}

func isUnavailable(result any) bool {
	m, ok := result.(map[string]any)
	if !ok {
		return false
	}
	name, _ := m["__typename"].(string)
	return unavailable[name]
}

// single extracts one entity.
func single(keys []string) func(string, any) (any, error) {
	return func(op string, doc any) (any, error) {
		result, ok := dig(doc, keys)
		if !ok {
			return nil, &DecodeError{Operation: op, Path: strings.Join(keys, "."), Err: ErrUndefinedField}
		}
		result = unwrap(result)
		if isUnavailable(result) {
			return nil, &DecodeError{Operation: op, Path: strings.Join(keys, "."), Err: ErrAccessDenied}
		}
		return result, nil
	}
}

// value extracts a field as is.
func value(keys []string) func(string, any) (any, error) {
	return func(op string, doc any) (any, error) {
		result, ok := dig(doc, keys)
		if !ok {
			return nil, &DecodeError{Operation: op, Path: strings.Join(keys, "."), Err: ErrUndefinedField}
		}
		return result, nil
	}
}

// resultList extracts a list of {result: ...} wrappers.
func resultList(keys []string) func(string, any) (any, error) {
	return func(op string, doc any) (any, error) {
		raw, ok := dig(doc, keys)
		list, isList := raw.([]any)
		if !ok || !isList {
			return nil, &DecodeError{Operation: op, Path: strings.Join(keys, "."), Err: ErrUndefinedField}
		}
		page := EmptyPage()
		for _, item := range list {
			result, ok := dig(item, []string{"result"})
			if !ok || isUnavailable(result) {
				continue
			}
			page.Items = append(page.Items, result)
		}
		return page, nil
	}
}

// timeline extracts the entries of a timeline. The first path that
// resolves wins.
func timeline(paths ...[]string) func(string, any) (any, error) {
	return func(op string, doc any) (any, error) {
		for _, keys := range paths {
			raw, ok := dig(doc, keys)
			if !ok {
				continue
			}
			instructions, ok := raw.([]any)
			if !ok {
				break
			}
			return parseInstructions(instructions), nil
		}
		return nil, &DecodeError{Operation: op, Path: strings.Join(paths[0], "."), Err: ErrUndefinedField}
	}
}

func parseInstructions(instructions []any) Page {
	page := EmptyPage()
	for _, ins := range instructions {
		m, ok := ins.(map[string]any)
		if !ok {
			continue
		}
		switch m["type"] {
		case "TimelineAddEntries":
			entries, _ := m["entries"].([]any)
			for _, e := range entries {
				collectEntry(&page, e)
			}
		case "TimelinePinEntry", "TimelineReplaceEntry":
			collectEntry(&page, m["entry"])
		}
	}
	return page
}

func collectEntry(page *Page, entry any) {
	content, ok := dig(entry, []string{"content"})
	if !ok {
		return
	}
	c, _ := content.(map[string]any)

	switch c["entryType"] {
	case "TimelineTimelineCursor":
		setCursor(page, c)
	case "TimelineTimelineItem":
		collectItem(page, c["itemContent"])
	case "TimelineTimelineModule":
		items, _ := c["items"].([]any)
		for _, it := range items {
			if ic, ok := dig(it, []string{"item", "itemContent"}); ok {
				collectItem(page, ic)
			}
		}
	}
}

func collectItem(page *Page, itemContent any) {
	for _, key := range []string{"tweet_results", "user_results"} {
		if result, ok := dig(itemContent, []string{key, "result"}); ok {
			result = unwrap(result)
			if !isUnavailable(result) {
				page.Items = append(page.Items, result)
			}
			return
		}
	}
	// Cursors are sometimes delivered as items
	if c, ok := itemContent.(map[string]any); ok && c["itemType"] == "TimelineTimelineCursor" {
		setCursor(page, c)
	}
}

func setCursor(page *Page, c map[string]any) {
	v, _ := c["value"].(string)
	switch c["cursorType"] {
	case "Top":
		page.Cursor.Top = v
	case "Bottom":
		page.Cursor.Bottom = v
	}
}
