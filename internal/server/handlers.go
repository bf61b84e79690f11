package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
	"github.com/nguyentantai21042004/meeting2slides/internal/processor"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type presentationIDRequest struct {
	PresentationID string `json:"presentationId"`
}

func (s *implServer) handleCreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req processor.CreateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pres, err := s.proc.CreatePresentation(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"presentation": pres})
}

func (s *implServer) handleListPresentations(w http.ResponseWriter, r *http.Request) {
	list, err := s.proc.ListPresentations(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Presentation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presentations": list})
}

func (s *implServer) handleGetPresentation(w http.ResponseWriter, r *http.Request) {
	pres, slides, err := s.proc.GetPresentation(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if slides == nil {
		slides = []models.Slide{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presentation": pres, "slides": slides})
}

func (s *implServer) handleDeletePresentation(w http.ResponseWriter, r *http.Request) {
	if err := s.proc.DeletePresentation(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *implServer) handleOutlineDocx(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.proc.OutlineDocument(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="presentation-%s.docx"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *implServer) handleProcessTranscript(w http.ResponseWriter, r *http.Request) {
	var req processor.TranscriptRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.proc.ProcessTranscript(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"outline":    res.Outline,
		"slideCount": res.SlideCount,
	})
}

func (s *implServer) handleGenerateImages(w http.ResponseWriter, r *http.Request) {
	var req processor.ImagesRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	images, err := s.proc.GenerateImages(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "images": images})
}

func (s *implServer) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req presentationIDRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pdfURL, err := s.proc.GeneratePDF(r.Context(), req.PresentationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pdfUrl": pdfURL})
}

func (s *implServer) handleGenerateHTML(w http.ResponseWriter, r *http.Request) {
	var req presentationIDRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.proc.GenerateHTML(r.Context(), req.PresentationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"html":       res.HTML,
		"slideCount": res.SlideCount,
	})
}

// handleRun creates the presentation and runs every stage in the background.
// Progress is available on the websocket endpoint.
func (s *implServer) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.runCtx.Err() != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is shutting down"})
		return
	}

	var req processor.CreateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pres, err := s.proc.CreatePresentation(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runs.Add(1)
	go func(id string) {
		defer s.runs.Done()
		if _, err := s.proc.Run(s.runCtx, processor.RunRequest{PresentationID: id}); err != nil {
			s.logger.Error(s.runCtx, "Background run %s failed: %v", id, err)
		}
	}(pres.ID)

	writeJSON(w, http.StatusAccepted, map[string]any{"presentationId": pres.ID})
}

func (s *implServer) handleGetSystemPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.proc.LoadSystemPrompt(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (s *implServer) handleSaveSystemPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	saved, err := s.proc.SaveSystemPrompt(r.Context(), strings.TrimSpace(req.Prompt))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "systemPrompt": saved})
}
