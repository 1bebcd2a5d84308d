package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	authmw "github.com/vital-check/vitalcheck-api/internal/auth/middleware"
	"github.com/vital-check/vitalcheck-api/internal/export"
	"github.com/vital-check/vitalcheck-api/internal/journal"
	"github.com/vital-check/vitalcheck-api/internal/rbac"
	"github.com/vital-check/vitalcheck-api/internal/session"
	"github.com/vital-check/vitalcheck-api/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReadingsHandler streams the caller's journal as an xlsx workbook and
// archives a copy in the blob store.
func ExportReadingsHandler(store journal.Store, blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		kind := journal.Kind(r.URL.Query().Get("kind"))
		list, err := store.List(r.Context(), sub, kind, 500)
		if err != nil {
			httpError(w, err)
			return
		}
		f, err := export.Readings(list)
		if err != nil {
			httpError(w, err)
			return
		}
		defer f.Close()

		name := fmt.Sprintf("readings-%s.xlsx", time.Now().Format("20060102-150405"))
		serveWorkbook(w, f, blobs, fmt.Sprintf("exports/%s/%s", sub, name), name)
	}
}

// ExportResultHandler streams one assessment result summary as xlsx.
func ExportResultHandler(store session.Store, blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetResult(chi.URLParam(r, "resultID"))
		if err != nil {
			httpError(w, err)
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		if rec.UserID != sub && !rbac.CanViewAll(role, "result") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		f, err := export.Result(rec)
		if err != nil {
			httpError(w, err)
			return
		}
		defer f.Close()

		name := fmt.Sprintf("result-%s.xlsx", rec.ID)
		serveWorkbook(w, f, blobs, fmt.Sprintf("exports/%s/%s", rec.UserID, name), name)
	}
}

func serveWorkbook(w http.ResponseWriter, f *excelize.File, blobs storage.BlobStore, key, filename string) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		http.Error(w, "render workbook", http.StatusInternalServerError)
		return
	}
	if blobs != nil {
		_, _ = blobs.Put(key, bytes.NewReader(buf.Bytes()))
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	_, _ = w.Write(buf.Bytes())
}
