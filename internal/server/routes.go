package server

import "net/http"

func (s *implServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/presentations", s.handleCreatePresentation)
	mux.HandleFunc("GET /api/presentations", s.handleListPresentations)
	mux.HandleFunc("GET /api/presentations/{id}", s.handleGetPresentation)
	mux.HandleFunc("DELETE /api/presentations/{id}", s.handleDeletePresentation)
	mux.HandleFunc("GET /api/presentations/{id}/outline.docx", s.handleOutlineDocx)

	mux.HandleFunc("POST /api/process-transcript", s.handleProcessTranscript)
	mux.HandleFunc("POST /api/generate-images", s.handleGenerateImages)
	mux.HandleFunc("POST /api/generate-pdf", s.handleGeneratePDF)
	mux.HandleFunc("POST /api/generate-html", s.handleGenerateHTML)
	mux.HandleFunc("POST /api/run", s.handleRun)

	mux.HandleFunc("GET /api/system-prompt", s.handleGetSystemPrompt)
	mux.HandleFunc("PUT /api/system-prompt", s.handleSaveSystemPrompt)

	mux.HandleFunc("GET /ws/presentations/{id}/progress", s.handleProgress)

	if s.bucket != nil {
		mux.Handle("GET "+s.bucket.RoutePrefix(), s.bucket.Handler())
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
