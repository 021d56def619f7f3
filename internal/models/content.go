package models

// Tip is one entry of the daily eco tip catalog.
type Tip struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Fact is one entry of the recycling facts catalog.
type Fact struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// TipPick is the cached tip-of-the-day selection.
type TipPick struct {
	Day   string `json:"day"`
	Index int    `json:"index"`
}

// BagState is the persisted shuffle-bag queue.
type BagState struct {
	Queue []int `json:"queue"`
}
