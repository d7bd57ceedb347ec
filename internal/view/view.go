// Package view renders the blog's HTML. Pages are html/template files
// embedded in the binary and exposed as templ components so handlers can
// render them directly or patch them into a page over SSE.
package view

import (
	"context"
	"crypto/md5"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"gravatar": Gravatar,
	"date":     formatDate,
	"trusted":  trusted,
	"year":     func() int { return time.Now().Year() },
}

var (
	pages     = map[string]*template.Template{}
	fragments = template.Must(template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/partials.html"))
)

func init() {
	for _, name := range []string{"home", "about", "contact", "login", "register", "post", "post_form", "delete", "error"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		))
	}
}

// Nav is the per-request chrome shared by every page: who is logged in and
// any one-shot flash message.
type Nav struct {
	DisplayName string
	IsAdmin     bool
	Flash       string
}

// LoggedIn reports whether the page is rendered for an authenticated user.
func (n Nav) LoggedIn() bool {
	return n.DisplayName != ""
}

// PostSummary is a post together with its author's display name and
// comment count.
type PostSummary struct {
	domain.Post
	AuthorName   string
	CommentCount int
}

// CommentView is a comment together with its author's public details.
type CommentView struct {
	domain.Comment
	AuthorName  string
	AuthorEmail string
}

// PostForm holds the values of the create/edit form.
type PostForm struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

// ContactForm holds the values of the contact form.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func page(name string, data map[string]any) templ.Component {
	t := pages[name]
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "layout", data)
	})
}

func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fragments.ExecuteTemplate(w, name, data)
	})
}

// HomePage lists the newest posts with a control to load older ones.
func HomePage(nav Nav, posts []PostSummary, nextOffset int, hasMore bool) templ.Component {
	return page("home", map[string]any{
		"Nav":   nav,
		"Title": "Home",
		"Posts": posts,
		"More":  loadMore{NextOffset: nextOffset, HasMore: hasMore},
	})
}

type loadMore struct {
	NextOffset int
	HasMore    bool
}

// PostListFragment renders post previews for appending to the home list.
func PostListFragment(posts []PostSummary) templ.Component {
	return fragment("post-list", posts)
}

// LoadMoreFragment renders the load-more control. Without more posts it
// renders an empty placeholder with the same id so the button disappears.
func LoadMoreFragment(nextOffset int, hasMore bool) templ.Component {
	return fragment("load-more", loadMore{NextOffset: nextOffset, HasMore: hasMore})
}

func AboutPage(nav Nav) templ.Component {
	return page("about", map[string]any{"Nav": nav, "Title": "About"})
}

// ContactPage renders the contact form, or a confirmation once sent.
func ContactPage(nav Nav, form ContactForm, sent bool, errMsg string) templ.Component {
	return page("contact", map[string]any{
		"Nav":   nav,
		"Title": "Contact",
		"Form":  form,
		"Sent":  sent,
		"Error": errMsg,
	})
}

func LoginPage(nav Nav, email, errMsg string) templ.Component {
	return page("login", map[string]any{
		"Nav":   nav,
		"Title": "Log In",
		"Email": email,
		"Error": errMsg,
	})
}

func RegisterPage(nav Nav, email, displayName, errMsg string) templ.Component {
	return page("register", map[string]any{
		"Nav":         nav,
		"Title":       "Register",
		"Email":       email,
		"DisplayName": displayName,
		"Error":       errMsg,
	})
}

// PostPage renders a full post, its comments and, for logged in readers,
// the comment form.
func PostPage(nav Nav, post PostSummary, comments []CommentView, draft, errMsg string) templ.Component {
	return page("post", map[string]any{
		"Nav":      nav,
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"Draft":    draft,
		"Error":    errMsg,
	})
}

// PostFormPage renders the create or edit form posting to action.
func PostFormPage(nav Nav, heading, action string, form PostForm, errMsg string) templ.Component {
	return page("post_form", map[string]any{
		"Nav":     nav,
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Error":   errMsg,
	})
}

// DeleteConfirmPage asks the admin to confirm deleting post.
func DeleteConfirmPage(nav Nav, post *domain.Post) templ.Component {
	return page("delete", map[string]any{
		"Nav":   nav,
		"Title": "Delete " + post.Title,
		"Post":  post,
	})
}

// ErrorPage renders an error page inside the usual chrome. Callers write the
// status header themselves.
func ErrorPage(nav Nav, status int, title, message string) templ.Component {
	return page("error", map[string]any{
		"Nav":     nav,
		"Title":   title,
		"Status":  status,
		"Heading": title,
		"Message": message,
	})
}

// Gravatar returns the avatar URL for an email address.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&d=retro&r=g", sum)
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// trusted marks stored rich text as safe. Bodies and comments are
// sanitized before they are written, never at render time.
func trusted(s string) template.HTML {
	return template.HTML(s)
}
