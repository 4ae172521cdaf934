package model

// QuizDraft is the in-progress, unpublished quiz an admin is building.
// One draft per admin, held in Redis between authoring calls.
//
// EditingID is the id of the stored quiz being edited, or empty when the
// draft will create a new quiz. Publish keys the replace on EditingID so a
// quiz id never changes mid-edit.
type QuizDraft struct {
	QuizID      string     `json:"quiz_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EditingID   string     `json:"editing_id,omitempty"`
	Questions   []Question `json:"questions"`
}

// TotalPoints sums the points of the draft's answerable questions.
func (d *QuizDraft) TotalPoints() int {
	total := 0
	for i := range d.Questions {
		if d.Questions[i].Answerable() {
			total += d.Questions[i].Points
		}
	}
	return total
}
