package ir

import "time"

type Course interface {
	GetDisplayName() string
	GetOrgName() string
	GetCourseCode() string
	GetRunName() string
	GetLanguage() string
	GetStartDate() *time.Time
	GetEndDate() *time.Time
	GetExtraAttributes() map[string]string
	GetChapters() []Chapter
	GetGradingCategories() []GradingCategory
	GetUnsupportedItems() []UnsupportedItem
	GetFrontPageHTML() string
}
