package command

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/catalog"
)

// Control names for form-triggered commands.
const (
	ControlUpload   = "upload"
	ControlEdit     = "edit"
	ControlGenerate = "generate"
	ControlSearch   = "search"
	ControlSort     = "sort"
)

// UploadInput is the upload form.
type UploadInput struct {
	Title       string `json:"title" form:"title"`
	Author      string `json:"author" form:"author"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	FileName    string `json:"file_name" form:"file_name"`
}

// EditInput is the edit form.
type EditInput struct {
	ID          int    `json:"-"`
	Title       string `json:"title" form:"title"`
	Author      string `json:"author" form:"author"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
}

// GenerateInput is the generate form. Sections maps a section name to the
// text typed for it.
type GenerateInput struct {
	Title    string            `json:"title" form:"title"`
	Author   string            `json:"author" form:"author"`
	Category string            `json:"category" form:"category"`
	Abstract string            `json:"abstract" form:"abstract"`
	Kind     string            `json:"template" form:"template"`
	Sections map[string]string `json:"sections"`
}

// Confirmer asks the user to approve deleting a paper.
type Confirmer func(id int) bool

// Upload adds a paper for a chosen file. Only the file name is kept.
func (c *Controller) Upload(ctx context.Context, in UploadInput) (catalog.Paper, error) {
	const name, errContext = "upload", "uploading paper"
	defer c.begin(ControlUpload)()
	start := time.Now()

	if strings.TrimSpace(in.FileName) == "" {
		return catalog.Paper{}, c.failed(name, errContext, start, catalog.Invalid("file", "Please choose a file to upload"))
	}
	if err := c.delayer.Wait(ctx, c.latency.Upload); err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}

	p := c.store.Add(catalog.Paper{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Description: in.Description,
		DateAdded:   catalog.Date(c.now()),
		FileName:    in.FileName,
	})
	c.succeed(name, start, true, "Paper uploaded successfully", zap.Int("id", p.ID))
	return p, nil
}

// Edit replaces the editable fields of an existing paper.
func (c *Controller) Edit(ctx context.Context, in EditInput) (catalog.Paper, error) {
	const name, errContext = "edit", "editing paper"
	defer c.begin(ControlEdit)()
	start := time.Now()

	if _, err := c.store.Find(in.ID); err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}
	if err := c.delayer.Wait(ctx, c.latency.Edit); err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}

	// The paper may have been deleted while we waited.
	p, err := c.store.Update(in.ID, catalog.Patch{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Description: in.Description,
	})
	if err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}
	c.succeed(name, start, true, "Paper updated successfully", zap.Int("id", p.ID))
	return p, nil
}

// OpenEdit fetches a paper to prefill the edit form.
func (c *Controller) OpenEdit(id int) (catalog.Paper, error) {
	p, err := c.store.Find(id)
	if err != nil {
		return catalog.Paper{}, c.failed("open-edit", "opening edit modal", time.Now(), err)
	}
	return p, nil
}

// Delete removes a paper once confirm approves. It reports whether the
// command went ahead; a declined confirmation does nothing and shows
// nothing. Deleting an ID that does not exist succeeds silently.
func (c *Controller) Delete(ctx context.Context, id int, confirm Confirmer) (bool, error) {
	const name, errContext = "delete", "deleting paper"
	if confirm != nil && !confirm(id) {
		return false, nil
	}
	defer c.begin(DeleteControl(id))()
	start := time.Now()

	if err := c.delayer.Wait(ctx, c.latency.Delete); err != nil {
		return false, c.failed(name, errContext, start, err)
	}

	removed := c.store.Remove(id)
	c.succeed(name, start, true, "Paper deleted successfully", zap.Int("id", id), zap.Bool("removed", removed))
	return true, nil
}

// Generate creates a paper from a template. Sections the user left blank
// get placeholder text.
func (c *Controller) Generate(ctx context.Context, in GenerateInput) (catalog.Paper, error) {
	const name, errContext = "generate", "generating paper"
	defer c.begin(ControlGenerate)()
	start := time.Now()

	tpl, err := c.templates.Lookup(in.Kind)
	if err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}
	if err := c.delayer.Wait(ctx, c.latency.Generate); err != nil {
		return catalog.Paper{}, c.failed(name, errContext, start, err)
	}

	fields := make(map[string]string, len(in.Sections)+1)
	fields["abstract"] = in.Abstract
	for k, v := range in.Sections {
		if strings.EqualFold(strings.TrimSpace(k), "abstract") {
			k = "abstract"
		}
		fields[k] = v
	}

	p := c.store.Add(catalog.Paper{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Description: in.Abstract,
		DateAdded:   catalog.Date(c.now()),
		FileName:    catalog.GeneratedFileName(in.Title),
		Template:    tpl.Meta(fields),
	})
	c.succeed(name, start, true, "Paper template generated successfully",
		zap.Int("id", p.ID), zap.String("template", tpl.Kind))
	return p, nil
}

// Search returns the papers whose title, author or description contain
// query, ignoring case, in store order.
func (c *Controller) Search(query string) []catalog.Paper {
	defer c.begin(ControlSearch)()
	return catalog.Filter{Search: query}.Apply(c.store.All())
}

// Sort returns every paper ordered by key without touching the store.
func (c *Controller) Sort(key catalog.SortKey) []catalog.Paper {
	defer c.begin(ControlSort)()
	return catalog.Sort(c.store.All(), key)
}

// View filters by query, then orders by key. An empty key keeps store order.
func (c *Controller) View(query string, key catalog.SortKey) []catalog.Paper {
	return catalog.Sort(c.Search(query), key)
}

// Download simulates fetching a paper's file and returns its name.
func (c *Controller) Download(ctx context.Context, id int) (string, error) {
	const name, errContext = "download", "downloading paper"
	defer c.begin(DownloadControl(id))()
	start := time.Now()

	p, err := c.store.Find(id)
	if err != nil {
		return "", c.failed(name, errContext, start, err)
	}
	if err := c.delayer.Wait(ctx, c.latency.Download); err != nil {
		return "", c.failed(name, errContext, start, err)
	}

	c.succeed(name, start, false, "Downloading "+p.FileName+"...", zap.Int("id", id))
	return p.FileName, nil
}

// Share copies a paper's share link to the clipboard and returns it.
func (c *Controller) Share(ctx context.Context, id int) (string, error) {
	const name, errContext = "share", "sharing paper"
	defer c.begin(ShareControl(id))()
	start := time.Now()

	p, err := c.store.Find(id)
	if err != nil {
		return "", c.failed(name, errContext, start, err)
	}
	if err := c.delayer.Wait(ctx, c.latency.Share); err != nil {
		return "", c.failed(name, errContext, start, err)
	}

	url := c.ShareURL(p.ID)
	if err := c.clipboard.WriteAll(url); err != nil {
		return "", c.failed(name, errContext, start, err)
	}
	c.succeed(name, start, false, "Share link copied to clipboard", zap.Int("id", id), zap.String("url", url))
	return url, nil
}
