// internal/client/standings/quest.go
package standings

import "fmt"

// QuestID identifies a quest independently of its display text.
type QuestID string

// QuestClemsonOrange asks for a photo of someone wearing Clemson Orange.
const QuestClemsonOrange QuestID = "clemson-orange-photo"

// Quest is a catalog entry. Points is both the advertised and the awarded value.
type Quest struct {
	ID      QuestID
	Title   string
	Points  int
	Photo   bool
	summary string // formatted with the player's display name
}

// Description is the feed text recorded when name completes q.
func (q Quest) Description(name string) string {
	return fmt.Sprintf(q.summary, name)
}

var catalog = []Quest{
	{
		ID:      QuestClemsonOrange,
		Title:   "Clemson Orange Quest",
		Points:  250,
		Photo:   true,
		summary: "%s took a photo of someone wearing Clemson Orange",
	},
}

// Quests returns the quest catalog.
func Quests() []Quest {
	return append([]Quest(nil), catalog...)
}

// LookupQuest returns the catalog entry for id.
func LookupQuest(id QuestID) (Quest, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}
