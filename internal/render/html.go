package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

// PageData is everything the HTML page shows.
type PageData struct {
	Cards      []Card
	Total      int
	Query      string
	Sort       catalog.SortKey
	Templates  []templates.Template
	Categories []string
}

var sortLabels = map[catalog.SortKey]string{
	catalog.SortDate:   "Date added (newest first)",
	catalog.SortTitle:  "Title (A-Z)",
	catalog.SortAuthor: "Author (A-Z)",
}

// HTML renders the full catalog page. Actions call the JSON API and reload;
// toasts arrive over the websocket at /ws.
func HTML(d PageData) string {
	var s strings.Builder

	s.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>paperctl Papers</title>
    <style>
        :root {
            --orange: #fb6820;
            --teal-light: #2ecfd4;
            --teal-dim: #0d3536;
            --teal-card: #1c2829;
            --teal-border: #1e3a3c;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #1a1a1a;
            color: #e0e0e0;
            line-height: 1.6;
        }
        .sticky-nav {
            position: sticky;
            top: 0;
            z-index: 10;
            background: #1a1a1a;
            padding: 20px 20px 10px;
            border-bottom: 2px solid var(--teal-border);
        }
        header, .controls, .forms, #papers { max-width: 1200px; margin: 0 auto 15px; }
        h1 { font-size: 2rem; }
        h1 .brand-paper { color: var(--orange); }
        h1 .brand-ctl { color: var(--teal-light); }
        .subtitle { color: #888; font-size: 0.9rem; }
        .controls { display: flex; gap: 15px; }
        .controls input, .controls select, form input, form select, form textarea {
            padding: 10px 14px;
            background: #2a2a2a;
            border: 1px solid #444;
            border-radius: 8px;
            color: #e0e0e0;
            font-size: 0.95rem;
        }
        .controls input { flex: 1; }
        .content-wrapper { padding: 20px; }
        .forms { display: grid; grid-template-columns: repeat(auto-fit, minmax(320px, 1fr)); gap: 20px; }
        form { display: flex; flex-direction: column; gap: 8px; }
        fieldset { border: 1px solid var(--teal-border); border-radius: 8px; padding: 15px; }
        legend { color: var(--orange); padding: 0 6px; }
        button {
            background: var(--teal-dim);
            color: var(--teal-light);
            border: 1px solid var(--teal-border);
            padding: 6px 12px;
            border-radius: 6px;
            cursor: pointer;
        }
        button:disabled { opacity: 0.5; cursor: wait; }
        .paper-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 20px; }
        .paper-card { background: var(--teal-card); border: 1px solid var(--teal-border); border-radius: 8px; padding: 15px; }
        .paper-id { font-size: 0.85rem; color: #888; font-family: monospace; }
        .paper-title { font-weight: 600; color: #fff; }
        .paper-author { font-size: 0.9rem; color: #aaa; }
        .paper-category { background: var(--teal-dim); color: var(--teal-light); padding: 2px 8px; border-radius: 4px; font-size: 0.8rem; }
        .paper-template { font-size: 0.8rem; color: #888; margin-top: 6px; }
        .paper-actions { display: flex; gap: 6px; margin-top: 10px; }
        .no-results { text-align: center; color: #888; padding: 40px; }
        #toasts { position: fixed; right: 20px; bottom: 20px; display: flex; flex-direction: column; gap: 8px; }
        .toast { padding: 10px 16px; border-radius: 6px; color: #fff; }
        .toast.success { background: #1e6b3a; }
        .toast.error { background: #8b2c2c; }
        .toast.warning { background: #8b6d1e; }
    </style>
</head>
<body>
    <div class="sticky-nav">
        <header>
            <h1><span class="brand-paper">paper</span><span class="brand-ctl">ctl</span></h1>
            <div class="subtitle">` + fmt.Sprintf("%d of %d papers", len(d.Cards), d.Total) + `</div>
        </header>
        <form class="controls" method="get" action="/">
            <input type="text" name="q" id="search" placeholder="Search by title, author or description..." value="` + html.EscapeString(d.Query) + `">
            <select name="sort" id="sort-by" onchange="this.form.submit()">
                <option value="">Order added</option>
`)
	for _, k := range catalog.SortKeys {
		selected := ""
		if k == d.Sort {
			selected = " selected"
		}
		fmt.Fprintf(&s, `                <option value="%s"%s>%s</option>
`, html.EscapeString(string(k)), selected, html.EscapeString(sortLabels[k]))
	}
	s.WriteString(`            </select>
            <button type="submit" id="search-button">Search</button>
        </form>
    </div>
    <div class="content-wrapper">
        <div class="forms">
`)
	renderUploadForm(&s, d.Categories)
	renderGenerateForm(&s, d.Categories, d.Templates)
	s.WriteString(`        </div>
        <div id="papers">
`)
	if len(d.Cards) == 0 {
		s.WriteString(`            <div class="no-results">` + EmptyMessage + `</div>
`)
	} else {
		s.WriteString(`            <div class="paper-grid">
`)
		for _, c := range d.Cards {
			renderCard(&s, c)
		}
		s.WriteString(`            </div>
`)
	}
	s.WriteString(`        </div>
    </div>
`)
	renderEditDialog(&s, d.Categories)
	s.WriteString(`    <div id="toasts"></div>
    <script>` + pageScript + `    </script>
</body>
</html>
`)
	return s.String()
}

func renderCard(s *strings.Builder, c Card) {
	fmt.Fprintf(s, `                <div class="paper-card" id="%s" data-id="%d" data-title="%s" data-author="%s" data-category="%s" data-description="%s">
                    <div class="paper-id">#%d · %s · %s</div>
                    <div class="paper-title">%s</div>
                    <div class="paper-author">%s</div>
                    <span class="paper-category">%s</span>
                    <p>%s</p>
`, c.Key(), c.ID,
		html.EscapeString(c.Title), html.EscapeString(c.Author),
		html.EscapeString(c.Category), html.EscapeString(c.Description),
		c.ID, html.EscapeString(c.DateAdded), html.EscapeString(c.FileName),
		html.EscapeString(c.Title), html.EscapeString(c.Author),
		html.EscapeString(c.Category), html.EscapeString(c.Description))
	if summary := c.TemplateSummary(); summary != "" {
		fmt.Fprintf(s, `                    <div class="paper-template">%s</div>
`, html.EscapeString(summary))
	}
	s.WriteString(`                    <div class="paper-actions">
`)
	for _, a := range c.Actions {
		fmt.Fprintf(s, `                        <button data-action="%s" data-id="%d">%s</button>
`, a.Name, a.ID, html.EscapeString(a.Label))
	}
	s.WriteString(`                    </div>
                </div>
`)
}

func renderCategorySelect(s *strings.Builder, categories []string) {
	s.WriteString(`                    <select name="category" required>
`)
	for _, c := range categories {
		fmt.Fprintf(s, `                        <option value="%s">%s</option>
`, html.EscapeString(c), html.EscapeString(c))
	}
	s.WriteString(`                    </select>
`)
}

func renderUploadForm(s *strings.Builder, categories []string) {
	s.WriteString(`            <form id="upload-form" enctype="multipart/form-data">
                <fieldset>
                    <legend>Upload paper</legend>
                    <input name="title" placeholder="Title" required>
                    <input name="author" placeholder="Author" required>
`)
	renderCategorySelect(s, categories)
	s.WriteString(`                    <textarea name="description" placeholder="Description"></textarea>
                    <input type="file" name="file" accept=".pdf" required>
                    <button type="submit" id="upload-button">Upload</button>
                </fieldset>
            </form>
`)
}

func renderGenerateForm(s *strings.Builder, categories []string, tpls []templates.Template) {
	s.WriteString(`            <form id="generate-form">
                <fieldset>
                    <legend>Generate from template</legend>
                    <input name="title" placeholder="Title" required>
                    <input name="author" placeholder="Author" required>
`)
	renderCategorySelect(s, categories)
	s.WriteString(`                    <select name="template" id="template-kind">
`)
	for _, t := range tpls {
		fmt.Fprintf(s, `                        <option value="%s" data-sections="%s">%s (%s)</option>
`, html.EscapeString(t.Kind), html.EscapeString(strings.Join(t.Sections, "|")),
			html.EscapeString(t.Name), html.EscapeString(t.Format))
	}
	s.WriteString(`                    </select>
                    <textarea name="abstract" placeholder="Abstract"></textarea>
                    <div id="section-fields"></div>
                    <button type="submit" id="generate-button">Generate</button>
                </fieldset>
            </form>
`)
}

func renderEditDialog(s *strings.Builder, categories []string) {
	s.WriteString(`    <dialog id="edit-dialog">
        <form id="edit-form" method="dialog">
            <fieldset>
                <legend>Edit paper</legend>
                <input type="hidden" name="id">
                <input name="title" placeholder="Title" required>
                <input name="author" placeholder="Author" required>
`)
	renderCategorySelect(s, categories)
	s.WriteString(`                <textarea name="description" placeholder="Description"></textarea>
                <button type="submit" id="edit-button">Save</button>
                <button type="button" onclick="this.closest('dialog').close()">Cancel</button>
            </fieldset>
        </form>
    </dialog>
`)
}

const pageScript = `
        const toasts = document.getElementById('toasts');
        function toast(n) {
            const el = document.createElement('div');
            el.className = 'toast ' + n.kind;
            el.id = 'toast-' + n.id;
            el.textContent = n.message;
            toasts.appendChild(el);
        }
        const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
        ws.onmessage = (ev) => {
            const e = JSON.parse(ev.data);
            if (e.type === 'shown') toast(e.notification);
            else document.getElementById('toast-' + e.notification.id)?.remove();
        };

        async function call(button, method, url, body) {
            button.disabled = true;
            try {
                const res = await fetch(url, { method, body });
                const data = await res.json().catch(() => ({}));
                return { ok: res.ok, data };
            } finally {
                button.disabled = false;
            }
        }
        function reloadSoon(ok) { if (ok) setTimeout(() => location.reload(), 300); }
        function json(form) { return JSON.stringify(Object.fromEntries(new FormData(form))); }

        document.getElementById('upload-form').addEventListener('submit', async (e) => {
            e.preventDefault();
            const r = await call(document.getElementById('upload-button'), 'POST', '/api/papers', new FormData(e.target));
            if (r.ok) e.target.reset();
            reloadSoon(r.ok);
        });

        const kind = document.getElementById('template-kind');
        function sectionFields() {
            const box = document.getElementById('section-fields');
            box.innerHTML = '';
            kind.selectedOptions[0].dataset.sections.split('|')
                .filter((s) => s !== 'Abstract')
                .forEach((s) => {
                    const t = document.createElement('textarea');
                    t.name = s.toLowerCase();
                    t.placeholder = s;
                    box.appendChild(t);
                });
        }
        kind.addEventListener('change', sectionFields);
        sectionFields();

        document.getElementById('generate-form').addEventListener('submit', async (e) => {
            e.preventDefault();
            const f = new FormData(e.target);
            const body = { title: f.get('title'), author: f.get('author'), category: f.get('category'),
                abstract: f.get('abstract'), template: f.get('template'), sections: {} };
            document.querySelectorAll('#section-fields textarea').forEach((t) => { body.sections[t.placeholder] = t.value; });
            const r = await call(document.getElementById('generate-button'), 'POST', '/api/papers/generate', JSON.stringify(body));
            if (r.ok) e.target.reset();
            reloadSoon(r.ok);
        });

        const dialog = document.getElementById('edit-dialog');
        const editForm = document.getElementById('edit-form');
        editForm.addEventListener('submit', async (e) => {
            e.preventDefault();
            const id = editForm.elements.id.value;
            const r = await call(document.getElementById('edit-button'), 'PUT', '/api/papers/' + id, json(editForm));
            if (r.ok) dialog.close();
            reloadSoon(r.ok);
        });

        document.querySelectorAll('.paper-actions button').forEach((b) => {
            b.addEventListener('click', async () => {
                const id = b.dataset.id;
                switch (b.dataset.action) {
                case 'download':
                    await call(b, 'POST', '/api/papers/' + id + '/download');
                    break;
                case 'share': {
                    const r = await call(b, 'POST', '/api/papers/' + id + '/share');
                    if (r.ok && navigator.clipboard) navigator.clipboard.writeText(r.data.url).catch(() => {});
                    break;
                }
                case 'edit': {
                    const r = await call(b, 'GET', '/api/papers/' + id);
                    if (!r.ok) break;
                    for (const k of ['title', 'author', 'category', 'description']) editForm.elements[k].value = r.data[k];
                    editForm.elements.id.value = id;
                    dialog.showModal();
                    break;
                }
                case 'delete':
                    if (!confirm('Are you sure you want to delete this paper?')) return;
                    reloadSoon((await call(b, 'DELETE', '/api/papers/' + id + '?confirm=true')).ok);
                    break;
                }
            });
        });
`
