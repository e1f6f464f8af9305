package vault

import (
	"fmt"
	"path"
	"strings"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// EnsureTopicLinks makes sure every topic of rec has a hub note containing a
// wiki-link to the problem note. Hubs are created on demand; a link is never
// appended twice.
func (v *FS) EnsureTopicLinks(rec models.ProblemRecord) error {
	link := "[[" + rec.NoteName() + "]]"

	for _, topic := range rec.UniqueTopics() {
		if err := v.ensureTopicLink(topic, link); err != nil {
			return fmt.Errorf("topic %s: %w", topic, err)
		}
	}
	return nil
}

func (v *FS) ensureTopicLink(topic, link string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	rel := path.Join(TopicsDir, topicFileName(topic))

	abs, err := v.abs(rel)
	if err != nil {
		return err
	}

	content, err := v.ReadDocument(rel)
	if err != nil {
		// New hub note.
		content = fmt.Sprintf("# %s\n\nProblems practicing this topic:\n", topic)
	}

	if strings.Contains(content, link) {
		return nil
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "- " + link + "\n"

	return atomicWrite(abs, []byte(content))
}

// topicFileName derives the hub note file name for a topic, reusing the
// record naming rules so "Dynamic Programming" and friends stay readable.
func topicFileName(topic string) string {
	return models.ProblemRecord{Title: topic}.NoteFileName()
}
