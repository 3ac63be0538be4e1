package templates

import (
	"html/template"
	"time"
)

type BaseData struct {
	Title         string
	CanonicalLink string
	Breadcrumbs   []Breadcrumb
	Notices       []Notice

	CurrentUrl   string
	LoginPageUrl string

	User *User
}

func (bd *BaseData) AddImmediateNotice(class, content string) {
	bd.Notices = append(bd.Notices, Notice{
		Class:   class,
		Content: template.HTML(content),
	})
}

type Breadcrumb struct {
	Name, Url string
}

type Notice struct {
	Content template.HTML
	Class   string
}

type PageInfo struct {
	Current  int
	Total    int
	FirstUrl string
	LastUrl  string
	NextUrl  string
	PrevUrl  string
}

type User struct {
	ID       int
	Username string
	Email    string
	RoleName string

	IsModerator bool
	IsAdmin     bool

	DateJoined time.Time

	ProfileUrl string
}

type Role struct {
	ID          int
	Name        string
	Description string
}

type WikiPage struct {
	Slug  string
	Title string

	Content template.HTML

	CreatedAt      time.Time
	LastModifiedAt time.Time

	Url        string
	EditUrl    string
	HistoryUrl string
	DeleteUrl  string
}

type WikiRevision struct {
	Title     string
	Comment   string
	Timestamp time.Time

	Editor *User
}

type Category struct {
	Name        string
	Description string

	Url       string
	EditUrl   string
	DeleteUrl string
}

type Thread struct {
	ID    int
	Title string

	Author     *User
	LastPoster *User

	CreatedAt  time.Time
	LastPostAt time.Time

	Url       string
	DeleteUrl string
}

type Post struct {
	ID int

	Author  *User
	Content template.HTML

	PostDate time.Time

	Url       string
	EditUrl   string
	DeleteUrl string

	Editable bool
}
