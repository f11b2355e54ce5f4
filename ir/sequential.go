package ir

type Sequential interface {
	GetDisplayName() string
	GetURLName() string
	GetIsPublished() bool
	GetPrereq() string
	GetExtraAttributes() map[string]string
	GetVerticals() []Vertical
}
