package models

// Request payload types. Server-assigned fields (owner, created_at, nested
// tags and completions) are absent from the input types entirely, so a
// client cannot write them no matter what it sends.

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=4"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh"`
}

type TagInput struct {
	Name string `json:"name" binding:"required,max=50"`
}

type HabitInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	TagIDs      []uint `json:"tag_ids"`
}

// HabitUpdateInput uses pointers so a partial update can tell "field
// omitted" from "field set to its zero value". A nil TagIDs leaves the tag
// set untouched; an empty list clears it.
type HabitUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	TagIDs      *[]uint `json:"tag_ids"`
}

type CompletionInput struct {
	HabitID   uint  `json:"habit" binding:"required"`
	Date      Date  `json:"date" binding:"required"`
	Completed *bool `json:"completed"`
}

type CompletionUpdateInput struct {
	Date      *Date `json:"date"`
	Completed *bool `json:"completed"`
}

type ProgressEntry struct {
	Habit     string `json:"habit"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
}
