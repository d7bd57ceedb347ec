package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/service"
)

// ImportedPost is one entry of a JSON post export. Both image_url and
// img_url are accepted for the cover image.
type ImportedPost struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	ImgURL   string `json:"img_url"`
	Date     string `json:"date"`
}

var importDateLayouts = []string{
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"January 2, 2006",
	"Jan 2, 2006",
}

// Importer loads posts from a JSON array into the blog.
type Importer struct {
	posts  *service.PostService
	client *http.Client
	logger *slog.Logger
}

// NewImporter creates an Importer. A nil client uses a 30 second timeout,
// and a nil logger falls back to slog.Default.
func NewImporter(posts *service.PostService, client *http.Client, logger *slog.Logger) *Importer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{posts: posts, client: client, logger: logger}
}

// Open returns the export at source, which is an http(s) URL or a file path.
func (im *Importer) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch export: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Import creates a post for every valid entry in r, authored by admin.
// Entries whose title already exists are skipped, so re-running an import
// is harmless. Invalid entries are logged and skipped.
func (im *Importer) Import(ctx context.Context, admin *domain.User, r io.Reader) (*Result, error) {
	var entries []ImportedPost
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode export: %v", domain.ErrInvalidInput, err)
	}

	res := &Result{Admin: admin}
	for i, e := range entries {
		in, err := e.toInput()
		if err != nil {
			im.logger.WarnContext(ctx, "skip import entry", "index", i, "title", e.Title, "error", err)
			res.Skipped++
			continue
		}

		if _, err := im.posts.Create(ctx, admin, in); err != nil {
			if errors.Is(err, domain.ErrDuplicateTitle) || errors.Is(err, domain.ErrInvalidInput) {
				im.logger.WarnContext(ctx, "skip import entry", "index", i, "title", e.Title, "error", err)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("import %q: %w", e.Title, err)
		}
		res.Created++
	}

	im.logger.InfoContext(ctx, "import complete", "posts", res.Created, "skipped", res.Skipped)
	return res, nil
}

func (e ImportedPost) toInput() (service.PostInput, error) {
	in := service.PostInput{
		Title:    e.Title,
		Subtitle: e.Subtitle,
		Body:     e.Body,
		ImgURL:   e.ImgURL,
	}
	if in.ImgURL == "" {
		in.ImgURL = e.ImageURL
	}

	if d := strings.TrimSpace(e.Date); d != "" {
		date, err := parseImportDate(d)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	return in, nil
}

func parseImportDate(s string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", domain.ErrInvalidInput, s)
}
