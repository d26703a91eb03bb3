package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/command"
	"github.com/blackwell-systems/paperctl/internal/render"
)

func (s *Server) index(c *gin.Context) {
	query := c.Query("q")
	key := catalog.ParseSortKey(c.Query("sort"))
	page := render.HTML(render.PageData{
		Cards:      render.Cards(s.ctl.View(query, key)),
		Total:      len(s.ctl.Papers()),
		Query:      query,
		Sort:       key,
		Templates:  s.ctl.Templates().All(),
		Categories: catalog.Categories,
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) listPapers(c *gin.Context) {
	papers := s.ctl.View(c.Query("q"), catalog.ParseSortKey(c.Query("sort")))
	c.JSON(http.StatusOK, gin.H{"papers": render.Cards(papers)})
}

// uploadPaper accepts a multipart form. The file name comes only from the
// file part's base name; its bytes are never read.
func (s *Server) uploadPaper(c *gin.Context) {
	var in command.UploadInput
	if err := c.ShouldBind(&in); err != nil {
		s.handleError(c, badRequest("Invalid upload form"), "uploading paper")
		return
	}
	in.FileName = ""
	if fh, err := c.FormFile("file"); err == nil {
		in.FileName = filepath.Base(fh.Filename)
	}
	p, err := s.ctl.Upload(c.Request.Context(), in)
	if err != nil {
		s.handleError(c, err, "uploading paper")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) generatePaper(c *gin.Context) {
	var in command.GenerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.handleError(c, badRequest("Invalid generate request"), "generating paper")
		return
	}
	p, err := s.ctl.Generate(c.Request.Context(), in)
	if err != nil {
		s.handleError(c, err, "generating paper")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) openEdit(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	p, err := s.ctl.OpenEdit(id)
	if err != nil {
		s.handleError(c, err, "opening edit modal")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) editPaper(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	var in command.EditInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.handleError(c, badRequest("Invalid edit request"), "editing paper")
		return
	}
	in.ID = id
	p, err := s.ctl.Edit(c.Request.Context(), in)
	if err != nil {
		s.handleError(c, err, "editing paper")
		return
	}
	c.JSON(http.StatusOK, p)
}

// deletePaper only proceeds with ?confirm=true; the browser asks first.
func (s *Server) deletePaper(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	deleted, err := s.ctl.Delete(c.Request.Context(), id, func(int) bool { return confirmed })
	if err != nil {
		s.handleError(c, err, "deleting paper")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) downloadPaper(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	name, err := s.ctl.Download(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err, "downloading paper")
		return
	}
	c.JSON(http.StatusOK, gin.H{"file_name": name})
}

func (s *Server) sharePaper(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	url, err := s.ctl.Share(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err, "sharing paper")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (s *Server) citePaper(c *gin.Context) {
	id, ok := s.paperID(c)
	if !ok {
		return
	}
	p, err := s.ctl.Find(id)
	if err != nil {
		s.handleError(c, err, "citing paper")
		return
	}
	c.Header("Content-Disposition", "inline; filename=\""+render.CiteKey(p)+".bib\"")
	c.String(http.StatusOK, render.BibTeX([]catalog.Paper{p}))
}

func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": s.ctl.Templates().All()})
}

func (s *Server) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": s.ctl.Notifier().Active()})
}

func (s *Server) dismissNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.handleError(c, badRequest("Invalid notification id"), "dismissing notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": s.ctl.Notifier().Dismiss(id)})
}

// paperID parses the :id path parameter, answering 400 when it is not an
// integer.
func (s *Server) paperID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.handleError(c, badRequest("Invalid paper id"), "reading paper id")
		return 0, false
	}
	return id, true
}
