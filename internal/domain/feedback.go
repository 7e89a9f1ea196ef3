package domain

// FeedbackStatus enumerates lifecycle states for feedback items.
type FeedbackStatus string

const (
	FeedbackStatusOpen       FeedbackStatus = "OPEN"
	FeedbackStatusInProgress FeedbackStatus = "IN_PROGRESS"
	FeedbackStatusDone       FeedbackStatus = "DONE"
	FeedbackStatusResolved   FeedbackStatus = "RESOLVED"
	FeedbackStatusClosed     FeedbackStatus = "CLOSED"
)

// FeedbackPriority enumerates how urgent a feedback item is.
type FeedbackPriority string

const (
	FeedbackPriorityLow    FeedbackPriority = "LOW"
	FeedbackPriorityMedium FeedbackPriority = "MEDIUM"
	FeedbackPriorityHigh   FeedbackPriority = "HIGH"
)

// DefaultPriority is stored when a row is written without a priority.
const DefaultPriority = FeedbackPriorityMedium

// Field limits, counted in characters.
const (
	MaxTitleLength       = 140
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 64
)

// Feedback is the single entity tracked by the service.
type Feedback struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      FeedbackStatus
	Priority    FeedbackPriority
	CreatedAt   int64
}

// FeedbackFields are the client-editable attributes of a feedback item.
type FeedbackFields struct {
	Title       string           `json:"title" validate:"notblank,max=140"`
	Description string           `json:"description" validate:"notblank,max=2000"`
	Category    string           `json:"category" validate:"notblank,max=64"`
	Priority    FeedbackPriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
}

// NewFeedback validates fields and builds an OPEN feedback item created at createdAt (epoch millis).
func NewFeedback(fields FeedbackFields, createdAt int64) (*Feedback, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}
	return &Feedback{
		Title:       fields.Title,
		Description: fields.Description,
		Category:    fields.Category,
		Status:      FeedbackStatusOpen,
		Priority:    fields.Priority,
		CreatedAt:   createdAt,
	}, nil
}

// ApplyUpdate overwrites the editable fields. ID, Status and CreatedAt are left alone.
func (f *Feedback) ApplyUpdate(fields FeedbackFields) error {
	if err := ValidateFields(fields); err != nil {
		return err
	}
	f.Title = fields.Title
	f.Description = fields.Description
	f.Category = fields.Category
	f.Priority = fields.Priority
	return nil
}

// IsValid reports whether s is a member of the status enumeration.
func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackStatusOpen, FeedbackStatusInProgress, FeedbackStatusDone, FeedbackStatusResolved, FeedbackStatusClosed:
		return true
	}
	return false
}

// IsValid reports whether p is a member of the priority enumeration.
func (p FeedbackPriority) IsValid() bool {
	switch p {
	case FeedbackPriorityLow, FeedbackPriorityMedium, FeedbackPriorityHigh:
		return true
	}
	return false
}

// ParseStatus converts a wire value into a FeedbackStatus.
func ParseStatus(raw string) (FeedbackStatus, error) {
	status := FeedbackStatus(raw)
	if raw == "" {
		return "", newFieldError("status", "required")
	}
	if !status.IsValid() {
		return "", newFieldError("status", "oneof")
	}
	return status, nil
}

// ParsePriority converts a wire value into a FeedbackPriority.
func ParsePriority(raw string) (FeedbackPriority, error) {
	priority := FeedbackPriority(raw)
	if raw == "" {
		return "", newFieldError("priority", "required")
	}
	if !priority.IsValid() {
		return "", newFieldError("priority", "oneof")
	}
	return priority, nil
}
