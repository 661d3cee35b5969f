package cart

// Item is one cart line. JSON field names match the persisted slot format.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"img"`
	Quantity int    `json:"quantity"`
}

type Op string

const (
	OpAdd      Op = "add"
	OpIncrease Op = "increase"
	OpDecrease Op = "decrease"
	OpRemove   Op = "remove"
	OpClear    Op = "clear"
)

// Change describes one applied mutation. Items is the cart after it.
type Change struct {
	Op       Op
	ItemID   string
	Items    []Item
	Revision int64
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// normalize drops blank ids, merges duplicates in first-seen order and
// raises quantities below one.
func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if i, ok := index[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
