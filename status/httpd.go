// Package status serves the HTTP status page, Prometheus metrics and
// health endpoint for long running commands.
package status

import (
	"fmt"
	htmltemplate "html/template"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/wojas/go-healthz"

	"github.com/mpxstore/mdckit/config"
	"github.com/mpxstore/mdckit/omf"
)

// StartHTTPServer starts the status HTTP server in the background, if an
// address is configured.
func StartHTTPServer(c config.Config) {
	if c.HTTP.Address == "" {
		logrus.Info("HTTP status server disabled")
		return
	}
	logrus.WithField("address", c.HTTP.Address).Info("HTTP status server enabled")
	http.Handle("/metrics", promhttp.Handler())
	http.Handle("/healthz", healthz.Handler())
	http.Handle("/", &Page{
		c: c,
	})
	go func() {
		err := http.ListenAndServe(c.HTTP.Address, nil)
		logrus.Fatalf("HTTP server error: %v", err)
	}()
}

type Page struct {
	c config.Config
}

const statusTemplateString = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>mdckit Status</title>
	<style>
		body          { font-family: sans-serif; }
		table, td, th { border: 1px solid #ccc; border-collapse: collapse; }
		td, th        { padding: 5px; text-align: left; }
		a             { text-decoration: none; color: #3c6ac5; }
	</style>
</head>
<body>
	<h1>mdckit Status</h1>
	<p>
		<a href="/metrics">Prometheus metrics</a> |
		<a href="/healthz">Health</a>
	</p>

	<h2>MDC format</h2>
	<p>Current content version: <b>{{ .FormatVersion }}</b> ({{ .FormatComment }})</p>

	<h2>Config</h2>
	<pre>{{ .Config.String }}</pre>

</body>
</html>`

var statusTemplate *htmltemplate.Template

func init() {
	var err error
	statusTemplate, err = htmltemplate.New("status").Parse(statusTemplateString)
	if err != nil {
		log.Fatalf("BUG: Error in status HTML template: %v", err)
	}
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	cur := omf.CurrentVersion()
	comment, _ := omf.VersionComment(cur)
	data := struct {
		Config        config.Config
		FormatVersion string
		FormatComment string
	}{
		Config:        p.c,
		FormatVersion: cur.String(),
		FormatComment: comment,
	}

	err := statusTemplate.Execute(w, data)
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(fmt.Sprintf("Template execution error: %v", err)))
	}
}
