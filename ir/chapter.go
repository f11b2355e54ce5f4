package ir

type Chapter interface {
	GetDisplayName() string
	GetURLName() string
	GetIsPublished() bool
	GetExtraAttributes() map[string]string
	GetSequentials() []Sequential
}
