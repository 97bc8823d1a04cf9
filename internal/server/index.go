package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davetashner/tally/internal/config"
	"github.com/davetashner/tally/internal/dashboard"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
h1 { font-size: 1.5rem; margin-bottom: 1rem; }
form { display: grid; gap: .75rem; background: #f8f9fa; border: 1px solid #dee2e6; border-radius: 8px; padding: 1rem; }
label { font-size: .875rem; color: #6c757d; }
.warning { background: #fff3cd; border: 1px solid #ffc107; border-radius: 4px; padding: .5rem .75rem; margin-bottom: 1rem; }
button { padding: .5rem 1rem; border: 0; border-radius: 4px; background: #0d6efd; color: #fff; cursor: pointer; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Warning}}<p class="warning" role="alert">{{.Warning}}</p>{{end}}
<form method="post" action="/dashboard" enctype="multipart/form-data">
  <label>Checklist exports (JSON)<br><input type="file" name="files" accept=".json,application/json" multiple></label>
  <label>Delivery date<br><input type="date" name="delivery_date" value="{{.DeliveryDate}}"></label>
  <label>Team size<br><input type="number" name="team_size" min="1" value="{{.TeamSize}}"></label>
  <button type="submit">Build dashboard</button>
</form>
</body>
</html>`))

type indexData struct {
	Title        string
	Warning      string
	DeliveryDate string
	TeamSize     int
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, warning string) {
	p := s.opts.Pipeline
	data := indexData{
		Title:    p.Title,
		Warning:  warning,
		TeamSize: p.TeamSize,
	}
	if data.Title == "" {
		data.Title = dashboard.DefaultTitle
	}
	if !p.DeliveryDate.IsZero() {
		data.DeliveryDate = p.DeliveryDate.Format(config.DateLayout)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		slog.Error("render index", "request_id", RequestID(r.Context()), "error", err)
	}
}
