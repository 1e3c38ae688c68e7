package models

// NoticeCategory classifies a notice on the board.
type NoticeCategory string

const (
	CategoryExam         NoticeCategory = "Exam"
	CategoryEvent        NoticeCategory = "Event"
	CategoryAnnouncement NoticeCategory = "Announcement"
	CategoryGeneral      NoticeCategory = "General"
)

// CategoryFilterAll matches every category when filtering the board.
const CategoryFilterAll = "all"

// Categories lists every valid notice category.
func Categories() []NoticeCategory {
	return []NoticeCategory{CategoryExam, CategoryEvent, CategoryAnnouncement, CategoryGeneral}
}

// ValidCategory reports whether the value is a known category.
func ValidCategory(value string) bool {
	switch NoticeCategory(value) {
	case CategoryExam, CategoryEvent, CategoryAnnouncement, CategoryGeneral:
		return true
	default:
		return false
	}
}

// Notice represents a single board entry. The whole board is persisted as
// one ordered JSON sequence, so field types must survive the round trip:
// Reactions stays an integer and Visible stays a boolean.
type Notice struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Category       NoticeCategory `json:"category"`
	Date           string         `json:"date"`
	AttachmentName string         `json:"attachment_name,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Reactions      int            `json:"reactions"`
	Visible        bool           `json:"visible"`
}

// NoticeDraft carries the mutable fields of a notice under creation or
// edit. Identity, reaction count and visibility are never drafted.
type NoticeDraft struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Category       NoticeCategory `json:"category"`
	Date           string         `json:"date"`
	AttachmentName string         `json:"attachment_name"`
	ImageURL       string         `json:"image_url"`
}

// Role distinguishes the read-mostly visitor view from the admin view.
type Role string

const (
	RoleVisitor Role = "VISITOR"
	RoleAdmin   Role = "ADMIN"
)

// NoticeQuery holds the transient query state the projection is derived from.
type NoticeQuery struct {
	Search   string
	Category string
}
